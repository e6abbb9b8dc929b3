// Package certify checks parser certificates against concrete buffers.
//
// Certificates are derived when a parser is built and are never checked
// while parsing. The checks here apply a parser at every position of a set of
// buffers, including the end and one past it, and report each place where the
// observed behaviour contradicts a property.
package certify

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/dhamidi/parsec/buffer"
	"github.com/dhamidi/parsec/parsec"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("parsec.certify")

// Violation is a counterexample to a property.
type Violation struct {
	Property string
	Input    string
	Pos      int
	Detail   string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s violated on %q at %d: %s", v.Property, v.Input, v.Pos, v.Detail)
}

// Inputs returns every string over alphabet of length at most maxLen,
// shortest first.
func Inputs(alphabet string, maxLen int) []buffer.Buffer {
	chars := []rune(alphabet)
	bufs := []buffer.Buffer{buffer.New("")}
	layer := [][]rune{{}}
	for n := 1; n <= maxLen; n++ {
		var next [][]rune
		for _, prefix := range layer {
			for _, c := range chars {
				s := append(slices.Clone(prefix), c)
				next = append(next, s)
				bufs = append(bufs, buffer.FromRunes(s))
			}
		}
		layer = next
	}
	return bufs
}

// Strings wraps each string in a buffer.
func Strings(inputs ...string) []buffer.Buffer {
	bufs := make([]buffer.Buffer, len(inputs))
	for i, s := range inputs {
		bufs[i] = buffer.New(s)
	}
	return bufs
}

// check applies probe to every buffer concurrently and collects the
// violations in input order.
func check(property string, inputs []buffer.Buffer, probe func(buf buffer.Buffer, pos int) string) []Violation {
	results := make([][]Violation, len(inputs))
	var wg sync.WaitGroup
	for i, buf := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := 0; pos <= buf.Size()+1; pos++ {
				if detail := probe(buf, pos); detail != "" {
					results[i] = append(results[i], Violation{
						Property: property,
						Input:    buf.String(),
						Pos:      pos,
						Detail:   detail,
					})
				}
			}
		}()
	}
	wg.Wait()

	var all []Violation
	for _, vs := range results {
		all = append(all, vs...)
	}
	log.Debugf("%s: checked %d inputs, %d violations", property, len(inputs), len(all))
	return all
}

// Mono reports positions where p returns a position before its start.
func Mono[T any](p parsec.Parser[T], inputs []buffer.Buffer) []Violation {
	return check("mono", inputs, func(buf buffer.Buffer, pos int) string {
		r := p.Apply(buf, pos)
		if r.Pos() < pos {
			return fmt.Sprintf("returned %s", r)
		}
		return ""
	})
}

// Bounded reports positions at or past the end of a buffer where p succeeds.
func Bounded[T any](p parsec.Parser[T], inputs []buffer.Buffer) []Violation {
	return check("bounded", inputs, func(buf buffer.Buffer, pos int) string {
		if pos < buf.Size() {
			return ""
		}
		r := p.Apply(buf, pos)
		if r.IsDone() {
			return fmt.Sprintf("returned %s", r)
		}
		return ""
	})
}

// Certified checks every certificate p carries.
func Certified[T any](p parsec.Parser[T], inputs []buffer.Buffer) []Violation {
	var vs []Violation
	if p.IsMono() {
		vs = append(vs, Mono(p, inputs)...)
	}
	if p.IsBounded() {
		vs = append(vs, Bounded(p, inputs)...)
	}
	return vs
}

// Commitment checks the commitment law of OrElse(p, q): when p fails without
// progress the combination behaves like q, and when p fails after progress
// the combination is p's failure.
func Commitment[T any](p, q parsec.Parser[T], inputs []buffer.Buffer) []Violation {
	alt := parsec.OrElse(p, q)
	return check("commitment", inputs, func(buf buffer.Buffer, pos int) string {
		first := p.Apply(buf, pos)
		if first.IsDone() {
			return ""
		}
		got := alt.Apply(buf, pos)
		if first.Pos() != pos {
			if !sameResult(got, first) {
				return fmt.Sprintf("p returned %s after progress but OrElse returned %s", first, got)
			}
			return ""
		}
		want := q.Apply(buf, pos)
		if want.IsDone() && !sameResult(got, want) {
			return fmt.Sprintf("q returned %s but OrElse returned %s", want, got)
		}
		if !want.IsDone() && got.IsDone() {
			return fmt.Sprintf("both branches failed but OrElse returned %s", got)
		}
		return ""
	})
}

// Decoration checks that decorating p with msgs changes nothing but the
// messages of failures.
func Decoration[T any](msgs []string, p parsec.Parser[T], inputs []buffer.Buffer) []Violation {
	decorated := parsec.DecorateErrors(msgs, p)
	return check("decoration", inputs, func(buf buffer.Buffer, pos int) string {
		plain := p.Apply(buf, pos)
		got := decorated.Apply(buf, pos)
		if plain.IsDone() != got.IsDone() || plain.Pos() != got.Pos() {
			return fmt.Sprintf("%s became %s", plain, got)
		}
		if plain.IsDone() && !reflect.DeepEqual(plain.Value(), got.Value()) {
			return fmt.Sprintf("value %v became %v", plain.Value(), got.Value())
		}
		if !plain.IsDone() && !slices.Equal(got.Errors().Messages(), msgs) {
			return fmt.Sprintf("messages [%s], want [%s]",
				strings.Join(got.Errors().Messages(), ", "), strings.Join(msgs, ", "))
		}
		return ""
	})
}

func sameResult[T any](a, b parsec.Result[T]) bool {
	if a.IsDone() != b.IsDone() || a.Pos() != b.Pos() {
		return false
	}
	if a.IsDone() {
		return reflect.DeepEqual(a.Value(), b.Value())
	}
	return slices.Equal(a.Errors().Messages(), b.Errors().Messages())
}
