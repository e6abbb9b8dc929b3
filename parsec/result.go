package parsec

import (
	"fmt"
	"strings"
)

// Result is the outcome of applying a parser at a position: either Done with
// a new position and a value, or Fail with a position and error messages.
type Result[T any] struct {
	pos   int
	ok    bool
	value T
	errs  ErrorSet
}

// Done creates a successful result.
func Done[T any](pos int, value T) Result[T] {
	return Result[T]{pos: pos, ok: true, value: value}
}

// Fail creates a failed result.
func Fail[T any](pos int, errs ErrorSet) Result[T] {
	return Result[T]{pos: pos, errs: errs}
}

// Pos returns the position carried by the result, whether it succeeded or not.
func (r Result[T]) Pos() int {
	return r.pos
}

// IsDone reports whether the result is a success.
func (r Result[T]) IsDone() bool {
	return r.ok
}

// Value returns the parsed value. It is the zero value for failures.
func (r Result[T]) Value() T {
	return r.value
}

// Errors returns the error messages of a failure.
func (r Result[T]) Errors() ErrorSet {
	return r.errs
}

func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("Done(%d, %v)", r.pos, r.value)
	}
	return fmt.Sprintf("Fail(%d, {%s})", r.pos, strings.Join(r.errs.Messages(), ", "))
}

// failAs retypes a failure.
func failAs[U, T any](r Result[T]) Result[U] {
	return Result[U]{pos: r.pos, errs: r.errs}
}
