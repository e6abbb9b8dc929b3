package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/parsec/ebnf"
)

type JSONEncoder struct {
	w    io.Writer
	node *ebnf.Node
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(node *ebnf.Node) error {
	e.node = node
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(buildTree(e.node), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}
