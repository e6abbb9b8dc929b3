package parsec

import "github.com/dhamidi/parsec/buffer"

// Repetition is bounded by the input rather than by the element parser: a
// loop started at pos runs at most size-pos+1 times, one iteration per
// remaining character plus the attempt that ends the loop. Termination never
// depends on the certificates of the element parser; those only decide what
// the result of the loop looks like.

func budget(buf buffer.Buffer, pos int) int {
	return remaining(buf, pos) + 1
}

// repetition is the outcome of running an element parser level by level.
type repetition[T any] struct {
	items  []T
	starts []int // starts[i] is where items[i] began, starts[len(items)] where the last one ended
	kept   int   // leading items that form the successful repetition
	ok     bool
	fail   ErrorSet
	at     int
}

func (r repetition[T]) end() int {
	return r.starts[r.kept]
}

// repeat unrolls at most depth levels of
//
//	level(n) = (p at n, then level at the new position) <|> pure at n
//
// with level 0 failing outright, using a loop instead of recursion. A failure
// raised by a deep level climbs back through the enclosing levels; the first
// level that started where the failure happened absorbs it and ends the
// repetition there.
func repeat[T any](p Parser[T], buf buffer.Buffer, pos, depth int) repetition[T] {
	rep := repetition[T]{starts: []int{pos}}
	var failure Result[T]
	for {
		n := rep.starts[len(rep.starts)-1]
		if depth == 0 {
			failure = Fail[T](n, ErrorSet{})
			break
		}
		r := p.Apply(buf, n)
		if !r.ok {
			if r.pos == n {
				rep.kept, rep.ok = len(rep.items), true
				return rep
			}
			failure = r
			break
		}
		rep.items = append(rep.items, r.value)
		rep.starts = append(rep.starts, r.pos)
		depth--
	}
	for level := len(rep.items) - 1; level >= 0; level-- {
		if failure.pos == rep.starts[level] {
			rep.kept, rep.ok = level, true
			return rep
		}
	}
	rep.at, rep.fail = failure.pos, failure.errs
	return rep
}

// foldCaps is the certificate of every unbounded repetition: it is mono when
// its element is, and never bounded because it succeeds with no items at the
// end of the buffer.
func foldCaps(element Caps) Caps {
	return element & Mono
}

func foldlCore[A, T any](f func(A, T) A, init A, p Parser[T], depth int) Parser[A] {
	return Parser[A]{
		caps: foldCaps(p.caps),
		run: func(buf buffer.Buffer, pos int) Result[A] {
			return foldlRun(f, init, p, buf, pos, depth)
		},
	}
}

func foldlRun[A, T any](f func(A, T) A, init A, p Parser[T], buf buffer.Buffer, pos, depth int) Result[A] {
	rep := repeat(p, buf, pos, depth)
	if !rep.ok {
		return Fail[A](rep.at, rep.fail)
	}
	acc := init
	for _, x := range rep.items[:rep.kept] {
		acc = f(acc, x)
	}
	return Done(rep.end(), acc)
}

func foldrCore[T, B any](f func(T, B) B, init B, p Parser[T], depth int) Parser[B] {
	return Parser[B]{
		caps: foldCaps(p.caps),
		run: func(buf buffer.Buffer, pos int) Result[B] {
			return foldrRun(f, init, p, buf, pos, depth)
		},
	}
}

func foldrRun[T, B any](f func(T, B) B, init B, p Parser[T], buf buffer.Buffer, pos, depth int) Result[B] {
	rep := repeat(p, buf, pos, depth)
	if !rep.ok {
		return Fail[B](rep.at, rep.fail)
	}
	acc := init
	for i := rep.kept - 1; i >= 0; i-- {
		acc = f(rep.items[i], acc)
	}
	return Done(rep.end(), acc)
}

// Foldl repeats p as long as it succeeds, combining values from the left.
func Foldl[A, T any](f func(A, T) A, init A, p Parser[T]) Parser[A] {
	return Parser[A]{
		caps: foldCaps(p.caps),
		run: func(buf buffer.Buffer, pos int) Result[A] {
			return foldlRun(f, init, p, buf, pos, budget(buf, pos))
		},
	}
}

// Foldr repeats p as long as it succeeds, combining values from the right.
func Foldr[T, B any](f func(T, B) B, init B, p Parser[T]) Parser[B] {
	return Parser[B]{
		caps: foldCaps(p.caps),
		run: func(buf buffer.Buffer, pos int) Result[B] {
			return foldrRun(f, init, p, buf, pos, budget(buf, pos))
		},
	}
}

// Many repeats p zero or more times. It is Foldr with list construction.
func Many[T any](p Parser[T]) Parser[[]T] {
	return Parser[[]T]{
		caps: foldCaps(p.caps),
		run: func(buf buffer.Buffer, pos int) Result[[]T] {
			rep := repeat(p, buf, pos, budget(buf, pos))
			if !rep.ok {
				return Fail[[]T](rep.at, rep.fail)
			}
			items := make([]T, rep.kept)
			copy(items, rep.items)
			return Done(rep.end(), items)
		},
	}
}

// Many1 repeats p one or more times.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return Lift2(prepend[T], p, Many(p))
}

// ManyChar collects the characters of zero or more runs of p.
func ManyChar(p Parser[rune]) Parser[string] {
	return Map(Many(p), func(chars []rune) string { return string(chars) })
}

// SkipMany repeats p zero or more times and discards the values.
func SkipMany[T any](p Parser[T]) Parser[Unit] {
	return Foldl(func(u Unit, _ T) Unit { return u }, Unit{}, p)
}

// SepBy1 parses one or more p separated by sep.
func SepBy1[S, T any](sep Parser[S], p Parser[T]) Parser[[]T] {
	return Lift2(prepend[T], p, Many(Then(sep, p)))
}

// SepBy parses zero or more p separated by sep.
func SepBy[S, T any](sep Parser[S], p Parser[T]) Parser[[]T] {
	return OrElse(SepBy1(sep, p), Pure([]T{}))
}

// Count runs p exactly n times.
func Count[T any](n int, p Parser[T]) Parser[[]T] {
	if n <= 0 {
		return Pure([]T{})
	}
	return Parser[[]T]{
		caps: p.caps,
		run: func(buf buffer.Buffer, pos int) Result[[]T] {
			items := make([]T, 0, n)
			for range n {
				r := p.Apply(buf, pos)
				if !r.ok {
					return failAs[[]T](r)
				}
				items = append(items, r.value)
				pos = r.pos
			}
			return Done(pos, items)
		},
	}
}

func prepend[T any](x T, xs []T) []T {
	return append([]T{x}, xs...)
}
