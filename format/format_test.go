package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/parsec/buffer"
	"github.com/dhamidi/parsec/ebnf"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	xebnf "golang.org/x/exp/ebnf"
	"gopkg.in/yaml.v3"
)

func letter() *ebnf.Node {
	return &ebnf.Node{
		Kind:     "letter",
		Text:     "x",
		Terminal: true,
		Span: ebnf.Span{
			Start: buffer.Location{Offset: 0, Line: 1, Column: 1},
			End:   buffer.Location{Offset: 1, Line: 1, Column: 2},
		},
	}
}

func parseTree(t *testing.T) *ebnf.Node {
	t.Helper()
	source, err := xebnf.Parse("test", strings.NewReader(`
		List   = "[" [ number { "," number } ] "]" .
		number = "0" … "9" { "0" … "9" } .
	`))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	g, err := ebnf.Compile(source, ebnf.WithSkipSpace())
	if err != nil {
		t.Fatalf("compile grammar: %v", err)
	}
	node, err := g.Parse("List", []byte("[1, 22]"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return node
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(letter()); err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := `{
  "kind": "letter",
  "text": "x",
  "start": {
    "offset": 0,
    "line": 1,
    "column": 1
  },
  "end": {
    "offset": 1,
    "line": 1,
    "column": 2
  }
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLEncoder(&buf).Encode(letter()); err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := `kind: letter
text: x
start:
    offset: 0
    line: 1
    column: 1
end:
    offset: 1
    line: 1
    column: 2
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoders_Tree(t *testing.T) {
	node := parseTree(t)
	want := buildTree(node)

	if len(want.Children) != 5 {
		t.Fatalf("expected 5 children, got %d: %s", len(want.Children), node)
	}

	decoders := map[string]func([]byte, any) error{
		"json": json.Unmarshal,
		"yaml": yaml.Unmarshal,
		"cbor": cbor.Unmarshal,
	}
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			enc, err := New(name, &buf)
			if err != nil {
				t.Fatalf("new encoder: %v", err)
			}
			if err := enc.Encode(node); err != nil {
				t.Fatalf("encode: %v", err)
			}

			var got tree
			if err := decoders[name](buf.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCBOREncoder_Deterministic(t *testing.T) {
	node := parseTree(t)

	first, err := NewCBOREncoder(nil).encode(node)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := NewCBOREncoder(nil).encode(node)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("encodings differ:\n%x\n%x", first, second)
	}
}

func TestDigest(t *testing.T) {
	first, err := Digest(parseTree(t))
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	second, err := Digest(parseTree(t))
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if first != second || len(first) != 64 {
		t.Errorf("digests %q and %q, want equal 64 digit hex", first, second)
	}

	other, err := Digest(letter())
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if other == first {
		t.Error("different trees share a digest")
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New("xml", &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), `unknown format "xml"`) {
		t.Errorf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"cbor", "json", "yaml"}, Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(parseTree(t)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := ValidateJSON(buf.Bytes()); err != nil {
		t.Errorf("encoder output does not match schema: %v", err)
	}

	tests := []struct {
		name string
		data string
	}{
		{"empty kind", `{"kind": "", "start": {"offset": 0, "line": 1, "column": 1}, "end": {"offset": 0, "line": 1, "column": 1}}`},
		{"missing end", `{"kind": "List", "start": {"offset": 0, "line": 1, "column": 1}}`},
		{"bad child", `{"kind": "List", "start": {"offset": 0, "line": 1, "column": 1}, "end": {"offset": 0, "line": 1, "column": 1}, "children": [{"kind": "x"}]}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateJSON([]byte(tt.data)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
