package parsec

import "github.com/dhamidi/parsec/buffer"

// OrElse tries p and, only if p failed without consuming input, q.
//
//   - p succeeds: its result is returned and q never runs.
//   - p fails at a position other than the start: the failure is final.
//   - p fails at the start: q runs at the start. A success of q is returned.
//     If q fails at the start as well the two message sets are joined, p's
//     first. If q fails further along, p's failure is reported; if q fails
//     before the start, q's failure is reported.
//
// The combination is mono when both branches are, and bounded when both
// branches are: a bounded p fails at the end, either with progress, which is
// final, or without, which hands over to a q that is bounded itself.
func OrElse[T any](p, q Parser[T]) Parser[T] {
	caps := None
	if p.caps.Has(Mono) && q.caps.Has(Mono) {
		caps |= Mono
	}
	if p.caps.Has(Bounded) && q.caps.Has(Bounded) {
		caps |= Bounded
	}
	return Parser[T]{
		caps: caps,
		run: func(buf buffer.Buffer, pos int) Result[T] {
			first := p.Apply(buf, pos)
			if first.ok || first.pos != pos {
				return first
			}
			second := q.Apply(buf, pos)
			switch {
			case second.ok:
				return second
			case second.pos > pos:
				// q got further, but the failure stays where p stopped.
				return first
			case second.pos < pos:
				return second
			default:
				return Fail[T](pos, first.errs.Concat(second.errs))
			}
		},
	}
}

// Choice tries each parser in turn with the commitment rule of OrElse.
// Choice() always fails.
func Choice[T any](ps ...Parser[T]) Parser[T] {
	if len(ps) == 0 {
		return Failure[T]()
	}
	p := ps[len(ps)-1]
	for i := len(ps) - 2; i >= 0; i-- {
		p = OrElse(ps[i], p)
	}
	return p
}
