package parsec

import (
	"strconv"
	"strings"

	"github.com/dhamidi/parsec/buffer"
)

// Unit is the value of parsers that only recognise input.
type Unit struct{}

// Pure succeeds without consuming input. It never fails, so it is not
// bounded.
func Pure[T any](v T) Parser[T] {
	return Parser[T]{
		caps: Mono,
		run: func(_ buffer.Buffer, pos int) Result[T] {
			return Done(pos, v)
		},
	}
}

// Failure fails without consuming input and without messages.
func Failure[T any]() Parser[T] {
	return Parser[T]{
		caps: Mono | Bounded,
		run: func(_ buffer.Buffer, pos int) Result[T] {
			return Fail[T](pos, ErrorSet{})
		},
	}
}

// Satisfy consumes one character for which pred holds.
func Satisfy(pred func(rune) bool) Parser[rune] {
	return Parser[rune]{
		caps: Mono | Bounded,
		run: func(buf buffer.Buffer, pos int) Result[rune] {
			if pos < 0 || pos >= buf.Size() {
				return Fail[rune](pos, ErrorSet{})
			}
			c := buf.Read(pos)
			if !pred(c) {
				return Fail[rune](pos, ErrorSet{})
			}
			return Done(pos+1, c)
		},
	}
}

// AnyChar consumes any single character.
func AnyChar() Parser[rune] {
	return Decorate("any character", Satisfy(func(rune) bool { return true }))
}

// Char consumes exactly c.
func Char(c rune) Parser[rune] {
	return Decorate(strconv.QuoteRune(c), Satisfy(func(r rune) bool { return r == c }))
}

// String consumes the characters of s in order. A mismatch after the first
// character fails at the mismatch, so String commits once it has matched a
// prefix. String("") behaves like Pure("").
func String(s string) Parser[string] {
	chars := []rune(s)
	if len(chars) == 0 {
		return Pure(s)
	}
	var seq Parser[rune] = Char(chars[len(chars)-1])
	for i := len(chars) - 2; i >= 0; i-- {
		seq = Then(Char(chars[i]), seq)
	}
	return Decorate(strconv.Quote(s), Replace(seq, s))
}

// OneOf consumes one of the characters in chars.
func OneOf(chars string) Parser[rune] {
	msgs := make([]string, 0, len(chars))
	for _, c := range chars {
		msgs = append(msgs, strconv.QuoteRune(c))
	}
	return DecorateErrors(msgs, Satisfy(func(r rune) bool {
		return strings.ContainsRune(chars, r)
	}))
}

// NoneOf consumes one character that is not in chars.
func NoneOf(chars string) Parser[rune] {
	return Satisfy(func(r rune) bool {
		return !strings.ContainsRune(chars, r)
	})
}

// EOF succeeds without consuming input at the end of the buffer and fails
// everywhere else. It succeeds exactly where a bounded parser must fail, so
// it is not bounded.
func EOF() Parser[Unit] {
	return Parser[Unit]{
		caps: Mono,
		run: func(buf buffer.Buffer, pos int) Result[Unit] {
			if pos >= buf.Size() {
				return Done(pos, Unit{})
			}
			return Fail[Unit](pos, Errors("end of input"))
		},
	}
}

// Remaining reports the number of characters left without consuming any.
func Remaining() Parser[int] {
	return Parser[int]{
		caps: Mono,
		run: func(buf buffer.Buffer, pos int) Result[int] {
			return Done(pos, remaining(buf, pos))
		},
	}
}

// Position reports the current position without consuming input.
func Position() Parser[int] {
	return Parser[int]{
		caps: Mono,
		run: func(_ buffer.Buffer, pos int) Result[int] {
			return Done(pos, pos)
		},
	}
}

func remaining(buf buffer.Buffer, pos int) int {
	if pos >= buf.Size() {
		return 0
	}
	return buf.Size() - pos
}

// Decorate replaces the messages of a failure of p with msg.
func Decorate[T any](msg string, p Parser[T]) Parser[T] {
	return DecorateErrors([]string{msg}, p)
}

// DecorateErrors replaces the messages of a failure of p with msgs. Successes
// and the position of failures are left untouched, so the certificates of p
// carry over.
func DecorateErrors[T any](msgs []string, p Parser[T]) Parser[T] {
	errs := Errors(msgs...)
	return Parser[T]{
		caps: p.caps,
		run: func(buf buffer.Buffer, pos int) Result[T] {
			r := p.Apply(buf, pos)
			if r.ok {
				return r
			}
			return Fail[T](r.pos, errs)
		},
	}
}
