package parsec

import (
	"fmt"
	"strings"

	"github.com/dhamidi/parsec/buffer"
)

type runFunc[T any] func(buf buffer.Buffer, pos int) Result[T]

// Parser is a composable parser producing values of type T. A Parser holds
// no mutable state; the same value may be applied to any number of buffers
// and positions, concurrently if needed.
//
// The zero Parser fails without consuming input.
type Parser[T any] struct {
	run  runFunc[T]
	caps Caps
}

// Primitive wraps fn as a parser carrying caps. The caller vouches for the
// certificates; everything built on top of it inherits them.
func Primitive[T any](caps Caps, fn func(buf buffer.Buffer, pos int) Result[T]) Parser[T] {
	return Parser[T]{run: fn, caps: caps}
}

// Apply runs the parser on buf starting at pos.
func (p Parser[T]) Apply(buf buffer.Buffer, pos int) Result[T] {
	if p.run == nil {
		return Fail[T](pos, ErrorSet{})
	}
	return p.run(buf, pos)
}

// Caps returns the certificates attached to the parser.
func (p Parser[T]) Caps() Caps {
	return p.caps
}

// IsMono reports whether the parser is certified never to move backwards.
func (p Parser[T]) IsMono() bool {
	return p.caps.Has(Mono)
}

// IsBounded reports whether the parser is certified to fail at the end of
// the buffer.
func (p Parser[T]) IsBounded() bool {
	return p.caps.Has(Bounded)
}

// Run applies p to buf at position 0.
func Run[T any](p Parser[T], buf buffer.Buffer) Result[T] {
	return p.Apply(buf, 0)
}

// Parse runs p over the whole of input. Input left over after p succeeds is
// reported as an error.
func Parse[T any](p Parser[T], input string) (T, error) {
	return ParseBuffer(p, buffer.New(input))
}

// ParseBuffer is like Parse but reads from an existing buffer.
func ParseBuffer[T any](p Parser[T], buf buffer.Buffer) (T, error) {
	r := Run(Skip(p, EOF()), buf)
	if !r.IsDone() {
		var zero T
		return zero, &ParseError{
			Location: buf.Locate(r.Pos()),
			Messages: r.Errors().Messages(),
		}
	}
	return r.Value(), nil
}

// ParseError describes a failed top-level parse.
type ParseError struct {
	Location buffer.Location
	Messages []string
}

func (e *ParseError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("%s: syntax error", e.Location)
	}
	return fmt.Sprintf("%s: expected %s", e.Location, strings.Join(dedupe(e.Messages), " or "))
}

func dedupe(msgs []string) []string {
	seen := make(map[string]bool, len(msgs))
	out := msgs[:0:0]
	for _, msg := range msgs {
		if seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, msg)
	}
	return out
}
