package format

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/dhamidi/parsec/ebnf"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// CBOREncoder writes the canonical CBOR encoding of a tree, so equal trees
// always produce identical bytes.
type CBOREncoder struct {
	w    io.Writer
	node *ebnf.Node
}

func NewCBOREncoder(w io.Writer) *CBOREncoder {
	return &CBOREncoder{w: w}
}

func (e *CBOREncoder) Encode(node *ebnf.Node) error {
	e.node = node
	return write(e.w, e)
}

func (e *CBOREncoder) MarshalText() ([]byte, error) {
	return e.encode(e.node)
}

func (e *CBOREncoder) encode(node *ebnf.Node) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("create CBOR encoder: %w", err)
	}
	data, err := encMode.Marshal(buildTree(node))
	if err != nil {
		return nil, fmt.Errorf("encode CBOR: %w", err)
	}
	return data, nil
}

// Digest returns the hex BLAKE2b-256 hash of the canonical CBOR encoding of
// node. Trees that encode identically have the same digest.
func Digest(node *ebnf.Node) (string, error) {
	data, err := NewCBOREncoder(nil).encode(node)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
