package parsec

import (
	"testing"

	"github.com/dhamidi/parsec/buffer"
	"github.com/google/go-cmp/cmp"
)

func expectDone[T any](t *testing.T, r Result[T], pos int, value T) {
	t.Helper()
	if !r.IsDone() {
		t.Fatalf("got %s, want Done(%d, %v)", r, pos, value)
	}
	if r.Pos() != pos {
		t.Errorf("position = %d, want %d", r.Pos(), pos)
	}
	if diff := cmp.Diff(value, r.Value()); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func expectFail[T any](t *testing.T, r Result[T], pos int, msgs ...string) {
	t.Helper()
	if r.IsDone() {
		t.Fatalf("got %s, want Fail(%d, ...)", r, pos)
	}
	if r.Pos() != pos {
		t.Errorf("position = %d, want %d", r.Pos(), pos)
	}
	if msgs == nil {
		return
	}
	if diff := cmp.Diff(msgs, r.Errors().Messages()); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func apply[T any](p Parser[T], input string, pos int) Result[T] {
	return p.Apply(buffer.New(input), pos)
}
