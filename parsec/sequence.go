package parsec

import "github.com/dhamidi/parsec/buffer"

// Map transforms the value of a successful parse. Positions are unchanged,
// so Map keeps the certificates of p.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return Parser[B]{
		caps: p.caps,
		run: func(buf buffer.Buffer, pos int) Result[B] {
			r := p.Apply(buf, pos)
			if !r.ok {
				return failAs[B](r)
			}
			return Done(r.pos, f(r.value))
		},
	}
}

// Replace discards the value of p in favour of v.
func Replace[A, B any](p Parser[A], v B) Parser[B] {
	return Map(p, func(A) B { return v })
}

// Bind runs p and then the parser chosen by f from p's value, starting where
// p stopped. The first failure is returned unchanged.
//
// Nothing is known about the parsers f returns, so Bind is bounded when p is
// and never mono. Use BindCaps to certify the continuation.
func Bind[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return Parser[B]{
		caps: seqCaps(p.caps&^Mono, None),
		run:  bindRun(p, f, "", None),
	}
}

// BindCaps is Bind with a declaration that every parser f returns carries
// want. The certificates of the result are derived from p and want. If f
// breaks the declaration, the parse panics with a *CapsError.
func BindCaps[A, B any](p Parser[A], want Caps, f func(A) Parser[B]) Parser[B] {
	return Parser[B]{
		caps: seqCaps(p.caps, want),
		run:  bindRun(p, f, "BindCaps", want),
	}
}

func bindRun[A, B any](p Parser[A], f func(A) Parser[B], name string, want Caps) runFunc[B] {
	return func(buf buffer.Buffer, pos int) Result[B] {
		r := p.Apply(buf, pos)
		if !r.ok {
			return failAs[B](r)
		}
		next := f(r.value)
		if !next.caps.Has(want) {
			panic(&CapsError{Combinator: name, Want: want, Got: next.caps})
		}
		return next.Apply(buf, r.pos)
	}
}

// Lift2 runs p then q and combines their values with f.
func Lift2[A, B, C any](f func(A, B) C, p Parser[A], q Parser[B]) Parser[C] {
	return Parser[C]{
		caps: seqCaps(p.caps, q.caps),
		run: func(buf buffer.Buffer, pos int) Result[C] {
			a := p.Apply(buf, pos)
			if !a.ok {
				return failAs[C](a)
			}
			b := q.Apply(buf, a.pos)
			if !b.ok {
				return failAs[C](b)
			}
			return Done(b.pos, f(a.value, b.value))
		},
	}
}

// Pair holds the values of two parsers run in sequence.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Seq runs p then q and keeps both values.
func Seq[A, B any](p Parser[A], q Parser[B]) Parser[Pair[A, B]] {
	return Lift2(func(a A, b B) Pair[A, B] { return Pair[A, B]{a, b} }, p, q)
}

// Then runs p then q and keeps the value of q.
func Then[A, B any](p Parser[A], q Parser[B]) Parser[B] {
	return Lift2(func(_ A, b B) B { return b }, p, q)
}

// Skip runs p then q and keeps the value of p.
func Skip[A, B any](p Parser[A], q Parser[B]) Parser[A] {
	return Lift2(func(a A, _ B) A { return a }, p, q)
}

// Between runs open, p and close in order and keeps the value of p.
func Between[O, T, C any](open Parser[O], p Parser[T], close Parser[C]) Parser[T] {
	return Then(open, Skip(p, close))
}

// Optional runs p and falls back to def when p fails without consuming input.
func Optional[T any](p Parser[T], def T) Parser[T] {
	return OrElse(p, Pure(def))
}
