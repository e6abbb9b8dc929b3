package parsec

import (
	"sync"

	"github.com/dhamidi/parsec/buffer"
)

// Fix builds a self-referential parser: F receives the parser being defined
// and returns its body. Recursion is unrolled at most size-pos+1 levels deep
// from the position Fix is applied at; the innermost level fails. A grammar
// that recurses without consuming input therefore fails instead of looping.
//
// The certificates of Fix are those that hold for Failure, the depth zero
// parser, and that F preserves.
func Fix[T any](F func(Parser[T]) Parser[T]) Parser[T] {
	caps := fixCaps(F)
	return Parser[T]{
		caps: caps,
		run: func(buf buffer.Buffer, pos int) Result[T] {
			return fixCore(F, caps, budget(buf, pos)).Apply(buf, pos)
		},
	}
}

// fixCore applies F depth times, starting from Failure. Levels are built on
// first use.
func fixCore[T any](F func(Parser[T]) Parser[T], caps Caps, depth int) Parser[T] {
	if depth == 0 {
		return Failure[T]()
	}
	var (
		once  sync.Once
		inner Parser[T]
	)
	return F(Parser[T]{
		caps: caps,
		run: func(buf buffer.Buffer, pos int) Result[T] {
			once.Do(func() { inner = fixCore(F, caps, depth-1) })
			return inner.Apply(buf, pos)
		},
	})
}

// fixCaps computes the largest certificate set c such that F maps a parser
// carrying c to a parser carrying c. Failure carries every certificate, so c
// holds at every depth by induction.
func fixCaps[T any](F func(Parser[T]) Parser[T]) Caps {
	caps := allCaps
	for {
		next := F(placeholder[T](caps)).caps & caps
		if next == caps {
			return caps
		}
		caps = next
	}
}

// placeholder stands in for the recursive reference while certificates are
// derived. It is never applied.
func placeholder[T any](caps Caps) Parser[T] {
	return Parser[T]{caps: caps, run: Failure[T]().run}
}

// FixAll is Fix for a family of mutually recursive parsers. F receives a
// lookup for the members of the family and returns the body of every member.
// Looking up a name F does not define yields Failure.
//
// Every reference goes one level down, and a chain of references that
// consumes nothing visits each member at most once before it recurses on
// itself. The budget is therefore one level per member for every remaining
// character, plus one round for the end of the input.
//
// Each member carries the largest certificate set that the whole family
// preserves.
func FixAll[K comparable, T any](F func(ref func(K) Parser[T]) map[K]Parser[T]) map[K]Parser[T] {
	caps := fixAllCaps(F)
	family := make(map[K]Parser[T], len(caps))
	for name := range caps {
		family[name] = Parser[T]{
			caps: caps[name],
			run: func(buf buffer.Buffer, pos int) Result[T] {
				level := newFixLevel(F, caps, budget(buf, pos)*len(caps))
				return level.get(name).Apply(buf, pos)
			},
		}
	}
	return family
}

func fixAllCaps[K comparable, T any](F func(ref func(K) Parser[T]) map[K]Parser[T]) map[K]Caps {
	caps := map[K]Caps{}
	for name := range F(func(K) Parser[T] { return placeholder[T](allCaps) }) {
		caps[name] = allCaps
	}
	for {
		changed := false
		bodies := F(func(name K) Parser[T] {
			if c, ok := caps[name]; ok {
				return placeholder[T](c)
			}
			return Failure[T]()
		})
		for name, c := range caps {
			next := bodies[name].caps & c
			if next != c {
				caps[name] = next
				changed = true
			}
		}
		if !changed {
			return caps
		}
	}
}

// fixLevel is one level of an unrolled family. Its members refer to the
// members of the level below.
type fixLevel[K comparable, T any] struct {
	F      func(ref func(K) Parser[T]) map[K]Parser[T]
	caps   map[K]Caps
	depth  int
	once   sync.Once
	bodies map[K]Parser[T]
}

func newFixLevel[K comparable, T any](F func(ref func(K) Parser[T]) map[K]Parser[T], caps map[K]Caps, depth int) *fixLevel[K, T] {
	return &fixLevel[K, T]{F: F, caps: caps, depth: depth}
}

func (l *fixLevel[K, T]) get(name K) Parser[T] {
	if l.depth == 0 {
		return Failure[T]()
	}
	l.once.Do(func() {
		below := newFixLevel(l.F, l.caps, l.depth-1)
		l.bodies = l.F(func(name K) Parser[T] {
			c, ok := l.caps[name]
			if !ok {
				return Failure[T]()
			}
			return Parser[T]{
				caps: c,
				run: func(buf buffer.Buffer, pos int) Result[T] {
					return below.get(name).Apply(buf, pos)
				},
			}
		})
	})
	if p, ok := l.bodies[name]; ok {
		return p
	}
	return Failure[T]()
}
