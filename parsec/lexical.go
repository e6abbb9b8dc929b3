package parsec

import "unicode"

// Digit consumes one decimal digit and returns its value.
func Digit() Parser[int] {
	return Decorate("digit", Map(Satisfy(func(r rune) bool {
		return r >= '0' && r <= '9'
	}), func(r rune) int { return int(r - '0') }))
}

// Nat consumes one or more decimal digits and returns the number they spell.
func Nat() Parser[int] {
	digit := Digit()
	return BindCaps(digit, Mono, func(first int) Parser[int] {
		return Foldl(func(n, d int) int { return n*10 + d }, first, digit)
	})
}

// Space consumes one whitespace character.
func Space() Parser[rune] {
	return Decorate("whitespace", Satisfy(unicode.IsSpace))
}

// Spaces skips any amount of whitespace.
func Spaces() Parser[Unit] {
	return SkipMany(Satisfy(unicode.IsSpace))
}

// Token runs p and skips the whitespace that follows it.
func Token[T any](p Parser[T]) Parser[T] {
	return Skip(p, Spaces())
}
