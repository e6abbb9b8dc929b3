package format

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// TreeSchema is the JSON Schema of the trees written by JSONEncoder.
//
//go:embed tree.schema.json
var TreeSchema string

const treeSchemaURL = "schema://parsec/tree.json"

var compileTreeSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(treeSchemaURL, strings.NewReader(TreeSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(treeSchemaURL)
})

// ValidateJSON checks that data is a tree in the shape JSONEncoder writes.
func ValidateJSON(data []byte) error {
	schema, err := compileTreeSchema()
	if err != nil {
		return fmt.Errorf("compile tree schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode tree: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("validate tree: %w", err)
	}
	return nil
}
