package lsp

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dhamidi/parsec/ebnf"
	protocol "github.com/tliron/glsp/protocol_3_16"
	xebnf "golang.org/x/exp/ebnf"
)

const (
	source      = "parsec"
	grammarName = "grammar"
)

// positioned matches errors prefixed with a text/scanner position.
var positioned = regexp.MustCompile(`^[^:]*:(\d+):(\d+): (.*)$`)

// Diagnose checks the grammar in text and reports what it finds:
//
//   - syntax errors, and nothing else when there are any
//   - verification errors, starting from the first production; unreachable
//     productions are warnings
//   - compilation hints, such as repetitions that may not consume input
//   - the certificates of every production
func Diagnose(text string) []protocol.Diagnostic {
	d := &diagnoser{lines: strings.Split(text, "\n")}

	grammar, err := xebnf.Parse(grammarName, strings.NewReader(text))
	if err != nil {
		d.errors(err, protocol.DiagnosticSeverityError)
		return d.out
	}
	if len(grammar) == 0 {
		return d.out
	}

	if err := xebnf.Verify(grammar, ebnf.First(grammar)); err != nil {
		for _, e := range ebnf.ErrorList(err) {
			severity := protocol.DiagnosticSeverityError
			if strings.HasSuffix(e.Error(), " is unreachable") {
				severity = protocol.DiagnosticSeverityWarning
			}
			d.error(e, severity)
		}
	}

	compiled, err := ebnf.Compile(grammar)
	if err != nil {
		if !d.hasErrors() {
			d.errors(err, protocol.DiagnosticSeverityError)
		}
		return d.out
	}

	for _, hint := range compiled.Hints() {
		d.add(hint.Pos.Line, hint.Pos.Column, hint.Message, protocol.DiagnosticSeverityInformation)
	}
	for _, name := range compiled.Names() {
		pos := grammar[name].Pos()
		d.add(pos.Line, pos.Column, name+": "+compiled.Caps(name).String(), protocol.DiagnosticSeverityHint)
	}
	return d.out
}

type diagnoser struct {
	lines []string
	out   []protocol.Diagnostic
}

func (d *diagnoser) errors(err error, severity protocol.DiagnosticSeverity) {
	for _, e := range ebnf.ErrorList(err) {
		d.error(e, severity)
	}
}

func (d *diagnoser) error(err error, severity protocol.DiagnosticSeverity) {
	m := positioned.FindStringSubmatch(err.Error())
	if m == nil {
		d.add(1, 1, err.Error(), severity)
		return
	}
	line, _ := strconv.Atoi(m[1])
	col, _ := strconv.Atoi(m[2])
	d.add(line, col, m[3], severity)
}

func (d *diagnoser) hasErrors() bool {
	for _, diag := range d.out {
		if *diag.Severity == protocol.DiagnosticSeverityError {
			return true
		}
	}
	return false
}

// add records a diagnostic at a 1-based line and column. It covers the word
// starting there, or a single character.
func (d *diagnoser) add(line, col int, msg string, severity protocol.DiagnosticSeverity) {
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	start := protocol.Position{Line: protocol.UInteger(line - 1), Character: protocol.UInteger(col - 1)}
	end := start
	end.Character += protocol.UInteger(d.wordLength(line, col))

	src := source
	d.out = append(d.out, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &src,
		Message:  msg,
	})
}

func (d *diagnoser) wordLength(line, col int) int {
	if line > len(d.lines) {
		return 1
	}
	chars := []rune(d.lines[line-1])
	n := 0
	for i := col - 1; i < len(chars); i++ {
		r := chars[i]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		n++
	}
	if n == 0 {
		return 1
	}
	return n
}
