package parsec

import (
	"errors"
	"testing"
)

func TestMap(t *testing.T) {
	upper := Map(Char('a'), func(r rune) string { return "A" })
	expectDone(t, apply(upper, "ab", 0), 1, "A")
	expectFail(t, apply(upper, "b", 0), 0, "'a'")
}

func TestBind(t *testing.T) {
	counted := Bind(Digit(), func(n int) Parser[string] {
		return Map(Count(n, AnyChar()), func(chars []rune) string { return string(chars) })
	})
	expectDone(t, apply(counted, "3abcd", 0), 4, "abc")
	expectFail(t, apply(counted, "3ab", 0), 3, "any character")
	expectFail(t, apply(counted, "x", 0), 0, "digit")
}

func TestBindFailurePropagatesUnchanged(t *testing.T) {
	p := Bind(String("ab"), func(string) Parser[rune] { return Char('c') })
	expectFail(t, apply(p, "ax", 0), 1, `"ab"`)
	expectFail(t, apply(p, "abx", 0), 2, "'c'")
}

func TestBindCapsPanicsOnBrokenPromise(t *testing.T) {
	p := BindCaps(Char('a'), Bounded, func(rune) Parser[int] { return Pure(1) })
	defer func() {
		r := recover()
		var capsErr *CapsError
		err, ok := r.(error)
		if !ok || !errors.As(err, &capsErr) {
			t.Fatalf("recovered %v, want *CapsError", r)
		}
		if capsErr.Want != Bounded || capsErr.Got != Mono {
			t.Errorf("CapsError = %+v", capsErr)
		}
	}()
	apply(p, "a", 0)
}

func TestBindCapsDoesNotRunContinuationOnFailure(t *testing.T) {
	p := BindCaps(Char('a'), Bounded, func(rune) Parser[int] { return Pure(1) })
	expectFail(t, apply(p, "b", 0), 0, "'a'")
}

func TestSeqSkipThenBetween(t *testing.T) {
	expectDone(t, apply(Seq(Char('a'), Nat()), "a12", 0), 3, Pair[rune, int]{'a', 12})
	expectDone(t, apply(Skip(Nat(), Char(';')), "7;", 0), 2, 7)
	expectDone(t, apply(Then(Char('#'), Nat()), "#9", 0), 2, 9)
	expectDone(t, apply(Between(Char('('), Nat(), Char(')')), "(42)", 0), 4, 42)
	expectFail(t, apply(Between(Char('('), Nat(), Char(')')), "(42]", 0), 3, "')'")
}

func TestOptional(t *testing.T) {
	sign := Optional(Char('-'), '+')
	expectDone(t, apply(sign, "-1", 0), 1, '-')
	expectDone(t, apply(sign, "1", 0), 0, '+')
	expectDone(t, apply(sign, "", 0), 0, '+')
}
