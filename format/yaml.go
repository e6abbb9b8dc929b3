package format

import (
	"io"

	"github.com/dhamidi/parsec/ebnf"
	"gopkg.in/yaml.v3"
)

type YAMLEncoder struct {
	w    io.Writer
	node *ebnf.Node
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(node *ebnf.Node) error {
	e.node = node
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(buildTree(e.node))
}
