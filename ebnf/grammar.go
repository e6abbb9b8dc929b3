// Package ebnf compiles EBNF grammars into certified parsers.
//
// Grammars use the notation of golang.org/x/exp/ebnf, as found in the Go
// language reference:
//
//	Expr   = Term { ( "+" | "-" ) Term } .
//	Term   = number | "(" Expr ")" .
//	number = digit { digit } .
//	digit  = "0" … "9" .
//
// Every production becomes a parser producing a *Node. Productions are
// compiled as one mutually recursive family with parsec.FixAll, so recursive
// grammars, including left-recursive ones, always terminate. Alternatives
// follow the commitment rule of parsec.OrElse: once an alternative has
// consumed input the others are not tried, so alternatives sharing a prefix
// must be left-factored.
//
// Productions whose name starts with a lowercase letter are lexical: they
// produce a single terminal node holding the matched text and never skip
// whitespace.
package ebnf

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/parsec/buffer"
	"github.com/dhamidi/parsec/parsec"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/tliron/commonlog"
	xebnf "golang.org/x/exp/ebnf"
)

var log = commonlog.GetLogger("parsec.ebnf")

// ErrUnknownProduction is returned for references to productions that the
// grammar does not define.
var ErrUnknownProduction = errors.New("unknown production")

// Option configures compilation.
type Option func(*Grammar)

// WithSkipSpace makes non-lexical productions skip whitespace after every
// token and before the start production.
func WithSkipSpace() Option {
	return func(g *Grammar) {
		g.skipSpace = true
	}
}

// WithFile sets the file name reported in parse errors.
func WithFile(path string) Option {
	return func(g *Grammar) {
		g.filename = path
	}
}

// Hint is an informational finding about a compiled grammar.
type Hint struct {
	Pos        scanner.Position
	Production string
	Message    string
}

func (h Hint) String() string {
	return fmt.Sprintf("%s: %s: %s", h.Pos, h.Production, h.Message)
}

// Grammar is a compiled grammar.
type Grammar struct {
	source      xebnf.Grammar
	productions map[string]parsec.Parser[*Node]
	hints       []Hint
	skipSpace   bool
	filename    string
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (xebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := xebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	return grammar, nil
}

// Load reads and compiles the grammar in filename.
func Load(filename string, opts ...Option) (*Grammar, error) {
	source, err := LoadGrammar(filename)
	if err != nil {
		return nil, err
	}
	return Compile(source, opts...)
}

// Compile turns every production of source into a parser.
func Compile(source xebnf.Grammar, opts ...Option) (*Grammar, error) {
	g := &Grammar{source: source}
	for _, opt := range opts {
		opt(g)
	}

	if err := validate(source); err != nil {
		return nil, err
	}

	g.productions = parsec.FixAll(func(ref func(string) parsec.Parser[*Node]) map[string]parsec.Parser[*Node] {
		c := &compiler{grammar: g, ref: ref}
		return c.compileAll()
	})

	// A last pass over the finished family sees the final certificates.
	c := &compiler{
		grammar: g,
		ref:     func(name string) parsec.Parser[*Node] { return g.productions[name] },
		hints:   &g.hints,
	}
	c.compileAll()
	sort.Slice(g.hints, func(i, j int) bool {
		return g.hints[i].Pos.Offset < g.hints[j].Pos.Offset
	})

	log.Debugf("compiled %d productions, %d hints", len(g.productions), len(g.hints))
	return g, nil
}

// First returns the name of the production that appears first in source, or
// "" for an empty grammar.
func First(source xebnf.Grammar) string {
	first := ""
	for name, prod := range source {
		if first == "" || prod.Pos().Offset < source[first].Pos().Offset {
			first = name
		}
	}
	return first
}

// Start returns the production that appears first in the grammar source.
func (g *Grammar) Start() string {
	return First(g.source)
}

// Names returns the names of all productions in sorted order.
func (g *Grammar) Names() []string {
	names := make([]string, 0, len(g.productions))
	for name := range g.productions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Production returns the parser for the named production.
func (g *Grammar) Production(name string) (parsec.Parser[*Node], error) {
	p, ok := g.productions[name]
	if !ok {
		if suggestion := g.Suggest(name); suggestion != "" {
			return p, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownProduction, name, suggestion)
		}
		return p, fmt.Errorf("%w %q", ErrUnknownProduction, name)
	}
	return p, nil
}

// Caps returns the certificates of the named production.
func (g *Grammar) Caps(name string) parsec.Caps {
	return g.productions[name].Caps()
}

// Hints returns informational findings in source order.
func (g *Grammar) Hints() []Hint {
	return g.hints
}

// Suggest returns the production name closest to name, or "" if none is close.
func (g *Grammar) Suggest(name string) string {
	names := g.Names()
	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", 3
	for _, candidate := range names {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// Parse parses the whole of input with the start production.
func (g *Grammar) Parse(start string, input []byte) (*Node, error) {
	p, err := g.Production(start)
	if err != nil {
		return nil, err
	}
	if g.skipSpace {
		p = parsec.Then(parsec.Spaces(), p)
	}

	buf := buffer.New(string(input)).Named(g.filename)
	node, err := parsec.ParseBuffer(p, buf)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", start, err)
	}
	return node, nil
}

// validate rejects grammars the compiler cannot translate.
func validate(source xebnf.Grammar) error {
	var errs []error
	var walk func(expr xebnf.Expression)
	walk = func(expr xebnf.Expression) {
		switch e := expr.(type) {
		case xebnf.Alternative:
			for _, x := range e {
				walk(x)
			}
		case xebnf.Sequence:
			for _, x := range e {
				walk(x)
			}
		case *xebnf.Group:
			walk(e.Body)
		case *xebnf.Option:
			walk(e.Body)
		case *xebnf.Repetition:
			walk(e.Body)
		case *xebnf.Name:
			if _, ok := source[e.String]; !ok {
				errs = append(errs, fmt.Errorf("%s: %w %q", e.Pos(), ErrUnknownProduction, e.String))
			}
		case *xebnf.Range:
			if utf8.RuneCountInString(e.Begin.String) != 1 || utf8.RuneCountInString(e.End.String) != 1 {
				errs = append(errs, fmt.Errorf("%s: range bounds must be single characters", e.Pos()))
			}
		case *xebnf.Bad:
			errs = append(errs, fmt.Errorf("%s: %s", e.Pos(), e.Error))
		}
	}
	names := make([]string, 0, len(source))
	for name := range source {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		walk(source[name].Expr)
	}
	return errors.Join(errs...)
}

func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}
