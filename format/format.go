// Package format encodes concrete syntax trees for output.
package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/parsec/ebnf"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(node *ebnf.Node) error
}

var encoders = map[string]func(io.Writer) Encoder{
	"json": func(w io.Writer) Encoder { return NewJSONEncoder(w) },
	"yaml": func(w io.Writer) Encoder { return NewYAMLEncoder(w) },
	"cbor": func(w io.Writer) Encoder { return NewCBOREncoder(w) },
}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Names())
	}
	return newEncoder(w), nil
}

// Names lists the available formats.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// tree is the serialized shape of a node, shared by all encoders.
type tree struct {
	Kind     string   `json:"kind" yaml:"kind" cbor:"kind"`
	Text     string   `json:"text,omitempty" yaml:"text,omitempty" cbor:"text,omitempty"`
	Start    position `json:"start" yaml:"start" cbor:"start"`
	End      position `json:"end" yaml:"end" cbor:"end"`
	Children []tree   `json:"children,omitempty" yaml:"children,omitempty" cbor:"children,omitempty"`
}

type position struct {
	Offset int `json:"offset" yaml:"offset" cbor:"offset"`
	Line   int `json:"line" yaml:"line" cbor:"line"`
	Column int `json:"column" yaml:"column" cbor:"column"`
}

func buildTree(n *ebnf.Node) tree {
	t := tree{
		Kind: n.Kind,
		Text: n.Text,
		Start: position{
			Offset: n.Span.Start.Offset,
			Line:   n.Span.Start.Line,
			Column: n.Span.Start.Column,
		},
		End: position{
			Offset: n.Span.End.Offset,
			Line:   n.Span.End.Line,
			Column: n.Span.End.Column,
		},
	}
	if len(n.Children) > 0 {
		t.Children = make([]tree, len(n.Children))
		for i, child := range n.Children {
			t.Children[i] = buildTree(child)
		}
	}
	return t
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
