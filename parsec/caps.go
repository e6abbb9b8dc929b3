package parsec

import (
	"fmt"
	"strings"
)

// Caps is the set of certificates attached to a parser when it is built.
// Certificates are derived from the structure of the parser by the rules of
// each combinator and are never checked while parsing.
type Caps uint8

const (
	// Mono certifies that the parser never returns a position smaller than
	// the one it started at.
	Mono Caps = 1 << iota

	// Bounded certifies that the parser fails whenever it starts at or past
	// the end of the buffer.
	Bounded
)

// None is the empty certificate set.
const None Caps = 0

const allCaps = Mono | Bounded

// Has reports whether c contains every certificate in want.
func (c Caps) Has(want Caps) bool {
	return c&want == want
}

func (c Caps) String() string {
	if c == None {
		return "none"
	}
	var names []string
	if c.Has(Mono) {
		names = append(names, "mono")
	}
	if c.Has(Bounded) {
		names = append(names, "bounded")
	}
	return strings.Join(names, "|")
}

// seqCaps derives the certificates of running first and then second.
// The pair is mono when both stages are. It is bounded when the first stage
// is, or when a mono first stage hands an exhausted buffer to a bounded
// second stage.
func seqCaps(first, second Caps) Caps {
	caps := None
	if first.Has(Mono) && second.Has(Mono) {
		caps |= Mono
	}
	if first.Has(Bounded) || (first.Has(Mono) && second.Has(Bounded)) {
		caps |= Bounded
	}
	return caps
}

// CapsError is the panic value raised when a parser produced at run time does
// not carry the certificates its construction promised.
type CapsError struct {
	Combinator string
	Want       Caps
	Got        Caps
}

func (e *CapsError) Error() string {
	return fmt.Sprintf("parsec: %s promised %s but the parser carries %s", e.Combinator, e.Want, e.Got)
}
