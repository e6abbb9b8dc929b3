// Package parsec provides parser combinators over an immutable buffer, with
// certificates that record what every parser is guaranteed to do.
//
// # Overview
//
// A Parser[T] is a value describing how to turn a buffer and a start
// position into a Result[T]. Parsers are built from primitives and combined
// with combinators; nothing is parsed until Apply, Run or Parse is called.
//
//	digits := parsec.Many1(parsec.Digit())
//	list := parsec.Between(parsec.Char('['), parsec.SepBy(parsec.Char(','), parsec.Nat()), parsec.Char(']'))
//	v, err := parsec.Parse(list, "[1,22,333]")
//
// # Results
//
// Every parser returns either Done(pos, value) or Fail(pos, errors). The
// position is carried by both variants and is how combinators decide whether
// a parser consumed input.
//
// # Commitment
//
// OrElse(p, q) only tries q when p failed without consuming input. Once p
// has moved past the start, its failure is final:
//
//	p := parsec.OrElse(parsec.Then(parsec.Char('a'), parsec.Char('x')), parsec.Char('a'))
//	parsec.Run(p, buffer.New("ab")) // Fail(1, ...)
//
// # Certificates
//
// Each parser carries a Caps set, fixed when the parser is built:
//
//	Mono     the result position is never before the start position
//	Bounded  the parser fails when started at or past the end of the buffer
//
// Combinators derive the certificates of their result from those of their
// arguments:
//
//	combinator        mono                      bounded
//	Pure              yes                       no
//	Failure           yes                       yes
//	Satisfy           yes                       yes
//	EOF, Remaining    yes                       no
//	Map, Decorate     as p                      as p
//	Bind              no                        as p
//	BindCaps, Lift2   p and q                   p, or p mono and q bounded
//	OrElse            p and q                   p and q
//	Foldl, Many       as p                      no
//	Many1, SepBy1     as p                      as p
//	Fix, FixAll       preserved by F            preserved by F
//
// # Termination
//
// Repetition and recursion never rely on the element parser making progress.
// Foldl, Foldr, Many and friends run at most size-pos+1 iterations, and Fix
// unrolls at most size-pos+1 levels of recursion, counted from the position
// they are applied at. FixAll multiplies that by the number of members in the
// family. All of them use an explicit counter that fails at zero.
package parsec
