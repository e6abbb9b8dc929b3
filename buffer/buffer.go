// Package buffer provides the immutable, random-access input that parsers run over.
package buffer

import (
	"fmt"
	"sort"
)

// Location is a human readable position in a buffer.
type Location struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (l Location) String() string {
	if l.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Buffer is a fixed sequence of characters. Its contents never change after
// construction, so a Buffer may be shared freely between goroutines.
type Buffer struct {
	chars    []rune
	lines    []int // offsets of the first character of every line
	filename string
}

// New creates a buffer holding the characters of s.
func New(s string) Buffer {
	return FromRunes([]rune(s))
}

// FromRunes creates a buffer holding a copy of chars.
func FromRunes(chars []rune) Buffer {
	owned := make([]rune, len(chars))
	copy(owned, chars)
	return Buffer{chars: owned, lines: lineStarts(owned)}
}

// Named returns a copy of b that reports locations in the given file.
func (b Buffer) Named(filename string) Buffer {
	b.filename = filename
	return b
}

func lineStarts(chars []rune) []int {
	starts := []int{0}
	for i, c := range chars {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Size returns the number of characters in the buffer.
func (b Buffer) Size() int {
	return len(b.chars)
}

// Read returns the character at index i. It panics unless 0 <= i < Size().
func (b Buffer) Read(i int) rune {
	if i < 0 || i >= len(b.chars) {
		panic(fmt.Sprintf("buffer: read at %d outside [0, %d)", i, len(b.chars)))
	}
	return b.chars[i]
}

// Slice returns the text between from and to, clamped to the buffer.
func (b Buffer) Slice(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(b.chars) {
		to = len(b.chars)
	}
	if from >= to {
		return ""
	}
	return string(b.chars[from:to])
}

func (b Buffer) String() string {
	return string(b.chars)
}

// Filename returns the name given with Named, if any.
func (b Buffer) Filename() string {
	return b.filename
}

// Locate maps a position to a 1-based line and column. Positions past the
// end are reported at the end of the buffer.
func (b Buffer) Locate(pos int) Location {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.chars) {
		pos = len(b.chars)
	}
	if b.lines == nil {
		return Location{Filename: b.filename, Offset: pos, Line: 1, Column: pos + 1}
	}
	line := sort.Search(len(b.lines), func(i int) bool { return b.lines[i] > pos }) - 1
	return Location{
		Filename: b.filename,
		Offset:   pos,
		Line:     line + 1,
		Column:   pos - b.lines[line] + 1,
	}
}
