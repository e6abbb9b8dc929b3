package ebnf

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/dhamidi/parsec/buffer"
	"github.com/dhamidi/parsec/parsec"
	xebnf "golang.org/x/exp/ebnf"
)

type nodes = parsec.Parser[[]*Node]

// compiler translates the expressions of one grammar. It is run once per
// level of the recursive family, with ref pointing at the level below.
type compiler struct {
	grammar *Grammar
	ref     func(string) parsec.Parser[*Node]
	hints   *[]Hint

	// production being compiled
	prod    string
	lexical bool
}

func (c *compiler) compileAll() map[string]parsec.Parser[*Node] {
	out := make(map[string]parsec.Parser[*Node], len(c.grammar.source))
	for name, prod := range c.grammar.source {
		c.prod, c.lexical = name, isLexical(name)
		body := c.expr(prod.Expr)
		if c.lexical {
			out[name] = spanned(body, func(_ []*Node, text string, span Span) *Node {
				return newTerminal(name, text, span)
			})
			continue
		}
		out[name] = spanned(body, func(children []*Node, _ string, span Span) *Node {
			return newNonTerminal(name, children, span)
		})
	}
	return out
}

func (c *compiler) expr(expr xebnf.Expression) nodes {
	switch e := expr.(type) {
	case nil:
		return parsec.Pure[[]*Node](nil)

	case *xebnf.Token:
		lit := spanned(parsec.String(e.String), func(s string, text string, span Span) *Node {
			return newTerminal(strconv.Quote(s), text, span)
		})
		return single(c.token(lit))

	case *xebnf.Range:
		lo, _ := utf8.DecodeRuneInString(e.Begin.String)
		hi, _ := utf8.DecodeRuneInString(e.End.String)
		kind := fmt.Sprintf("%q…%q", e.Begin.String, e.End.String)
		class := parsec.Decorate(kind, parsec.Satisfy(func(r rune) bool {
			return lo <= r && r <= hi
		}))
		char := spanned(class, func(_ rune, text string, span Span) *Node {
			return newTerminal(kind, text, span)
		})
		return single(c.token(char))

	case xebnf.Sequence:
		if len(e) == 0 {
			return parsec.Pure[[]*Node](nil)
		}
		seq := c.expr(e[0])
		for _, item := range e[1:] {
			seq = parsec.Lift2(concat, seq, c.expr(item))
		}
		return seq

	case xebnf.Alternative:
		alts := make([]nodes, len(e))
		for i, alt := range e {
			alts[i] = c.expr(alt)
		}
		return parsec.Choice(alts...)

	case *xebnf.Group:
		return c.expr(e.Body)

	case *xebnf.Option:
		return parsec.Optional(c.expr(e.Body), nil)

	case *xebnf.Repetition:
		body := c.expr(e.Body)
		if c.hints != nil && !body.IsBounded() {
			*c.hints = append(*c.hints, Hint{
				Pos:        e.Pos(),
				Production: c.prod,
				Message:    "repetition body may succeed without consuming input",
			})
		}
		return parsec.Foldl(concat, nil, body)

	case *xebnf.Name:
		ref := c.ref(e.String)
		if !c.lexical && isLexical(e.String) {
			ref = c.token(ref)
		}
		return single(ref)

	case *xebnf.Bad:
		return parsec.Decorate(e.Error, parsec.Failure[[]*Node]())

	default:
		panic(fmt.Sprintf("ebnf: unexpected expression %T", expr))
	}
}

// token skips trailing whitespace after p when compiling a non-lexical
// production with WithSkipSpace.
func (c *compiler) token(p parsec.Parser[*Node]) parsec.Parser[*Node] {
	if c.lexical || !c.grammar.skipSpace {
		return p
	}
	return parsec.Token(p)
}

// spanned runs p and builds a value from its result, the text it consumed and
// where it was found. Positions and failures are those of p, so are its
// certificates.
func spanned[T, U any](p parsec.Parser[T], build func(v T, text string, span Span) U) parsec.Parser[U] {
	return parsec.Primitive(p.Caps(), func(buf buffer.Buffer, pos int) parsec.Result[U] {
		r := p.Apply(buf, pos)
		if !r.IsDone() {
			return parsec.Fail[U](r.Pos(), r.Errors())
		}
		span := Span{Start: buf.Locate(pos), End: buf.Locate(r.Pos())}
		return parsec.Done(r.Pos(), build(r.Value(), buf.Slice(pos, r.Pos()), span))
	})
}

func single(p parsec.Parser[*Node]) nodes {
	return parsec.Map(p, func(n *Node) []*Node { return []*Node{n} })
}

func concat(a, b []*Node) []*Node {
	out := make([]*Node, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
