package parsec

import (
	"testing"
	"unicode"

	"github.com/dhamidi/parsec/buffer"
)

func TestExactChar(t *testing.T) {
	expectDone(t, apply(Char('a'), "abc", 0), 1, 'a')
	expectFail(t, apply(Char('x'), "abc", 0), 0, "'x'")
}

func TestSatisfy(t *testing.T) {
	digit := Satisfy(unicode.IsDigit)
	expectDone(t, apply(digit, "a1", 1), 2, '1')
	r := apply(digit, "a1", 0)
	expectFail(t, r, 0)
	if r.Errors().Len() != 0 {
		t.Errorf("Satisfy failed with messages %q", r.Errors().Messages())
	}
	expectFail(t, apply(digit, "a1", 2), 2)
	expectFail(t, apply(digit, "a1", 7), 7)
}

func TestPureAndFailure(t *testing.T) {
	expectDone(t, apply(Pure(42), "abc", 2), 2, 42)
	expectDone(t, apply(Pure(42), "", 0), 0, 42)
	r := apply(Failure[int](), "abc", 1)
	expectFail(t, r, 1)
	if r.Errors().Len() != 0 {
		t.Errorf("Failure has messages %q", r.Errors().Messages())
	}
}

func TestEOF(t *testing.T) {
	buf := buffer.New("abcde")
	r := EOF().Apply(buf, 5)
	expectDone(t, r, 5, Unit{})
	expectFail(t, EOF().Apply(buf, 3), 3, "end of input")
}

func TestRemainingAndPosition(t *testing.T) {
	expectDone(t, apply(Remaining(), "abcd", 1), 1, 3)
	expectDone(t, apply(Remaining(), "abcd", 9), 9, 0)
	expectDone(t, apply(Position(), "abcd", 3), 3, 3)
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pos   int
		done  bool
		value string
	}{
		{"match", "let x", 3, true, "let"},
		{"prefix mismatch", "lex", 2, false, ""},
		{"first mismatch", "var", 0, false, ""},
		{"too short", "le", 2, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := apply(String("let"), tt.input, 0)
			if tt.done {
				expectDone(t, r, tt.pos, tt.value)
				return
			}
			expectFail(t, r, tt.pos, `"let"`)
		})
	}
}

func TestEmptyStringActsLikePure(t *testing.T) {
	p := String("")
	expectDone(t, apply(p, "", 0), 0, "")
	if p.IsBounded() {
		t.Error(`String("") must not be bounded`)
	}
	if !String("a").IsBounded() {
		t.Error(`String("a") must be bounded`)
	}
}

func TestOneOfAndNoneOf(t *testing.T) {
	expectDone(t, apply(OneOf("+-"), "-1", 0), 1, '-')
	expectFail(t, apply(OneOf("+-"), "1", 0), 0, "'+'", "'-'")
	expectDone(t, apply(NoneOf("\""), "ab", 0), 1, 'a')
	expectFail(t, apply(NoneOf("\""), `"`, 0), 0)
}

func TestAnyChar(t *testing.T) {
	expectDone(t, apply(AnyChar(), "é", 0), 1, 'é')
	expectFail(t, apply(AnyChar(), "", 0), 0, "any character")
}

func TestDecorateKeepsPosition(t *testing.T) {
	p := Decorate("keyword", String("let"))
	expectFail(t, apply(p, "lex", 0), 2, "keyword")
	expectDone(t, apply(p, "let", 0), 3, "let")

	multi := DecorateErrors([]string{"a", "b"}, Failure[int]())
	expectFail(t, apply(multi, "", 0), 0, "a", "b")
}

func TestDecoratePreservesCaps(t *testing.T) {
	for _, p := range []Parser[rune]{Char('a'), Pure('a'), Primitive[rune](None, nil)} {
		if got := Decorate("x", p).Caps(); got != p.Caps() {
			t.Errorf("Decorate changed caps from %s to %s", p.Caps(), got)
		}
	}
}

func TestLexical(t *testing.T) {
	expectDone(t, apply(Nat(), "1234x", 0), 4, 1234)
	expectFail(t, apply(Nat(), "x", 0), 0, "digit")
	expectDone(t, apply(Token(Char('a')), "a  \tb", 0), 4, 'a')
	expectDone(t, apply(Spaces(), "b", 0), 0, Unit{})
	expectDone(t, apply(Space(), " ", 0), 1, ' ')
}

func TestZeroParserFails(t *testing.T) {
	var p Parser[int]
	expectFail(t, apply(p, "abc", 1), 1)
}
