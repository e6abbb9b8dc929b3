package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listGrammar = `List   = "[" [ number { "," number } ] "]" .
number = digit { digit } .
digit  = "0" … "9" .
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	grammar := writeFile(t, dir, "list.ebnf", listGrammar)

	out, err := execute(t, "check", grammar, "--start", "List")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, "check", grammar, "--start", "Missing")
	require.Error(t, err)
	assert.Contains(t, out, "no start production Missing")

	broken := writeFile(t, dir, "broken.ebnf", "A = B .\nC = \"x\" … \"yz\" .\n")
	out, err = execute(t, "check", broken)
	require.Error(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `unknown production "B"`)
	assert.Contains(t, lines[1], "range bounds must be single characters")

	hinted := writeFile(t, dir, "hinted.ebnf", "List = { Item } .\nItem = [ \"x\" ] .\n")
	out, err = execute(t, "check", hinted)
	require.NoError(t, err)
	assert.Contains(t, out, "hint: ")
	assert.Contains(t, out, "List: repetition body may succeed without consuming input")
}

func TestCaps(t *testing.T) {
	grammar := writeFile(t, t.TempDir(), "list.ebnf", listGrammar+"Opt = [ \"a\" ] .\n")

	out, err := execute(t, "caps", grammar)
	require.NoError(t, err)
	assert.Equal(t, "List    mono|bounded\nOpt     mono\ndigit   mono|bounded\nnumber  mono|bounded\n", out)
}

func TestCaps_Verify(t *testing.T) {
	grammar := writeFile(t, t.TempDir(), "list.ebnf", listGrammar)

	out, err := execute(t, "caps", grammar, "--verify", "[1,]", "--max-len", "3")
	require.NoError(t, err)
	assert.NotContains(t, out, "violated")
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	grammar := writeFile(t, dir, "list.ebnf", listGrammar)
	input := writeFile(t, dir, "input.txt", "[1, 22]\n")

	out, err := execute(t, "parse", grammar, input, "--skip-space")
	require.NoError(t, err)

	var tree struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind string `json:"kind"`
			Text string `json:"text"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "List", tree.Kind)
	require.Len(t, tree.Children, 5)
	assert.Equal(t, "number", tree.Children[3].Kind)
	assert.Equal(t, "22", tree.Children[3].Text)

	out, err = execute(t, "parse", grammar, input, "--skip-space", "--start", "List", "-f", "yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "kind: List\n"), out)
}

func TestParse_Digest(t *testing.T) {
	dir := t.TempDir()
	grammar := writeFile(t, dir, "list.ebnf", listGrammar)
	spaced := writeFile(t, dir, "spaced.txt", "[1, 22]")
	tight := writeFile(t, dir, "tight.txt", "[1,22]")

	first, err := execute(t, "parse", grammar, spaced, "--skip-space", "--digest")
	require.NoError(t, err)
	again, err := execute(t, "parse", grammar, spaced, "--skip-space", "--digest")
	require.NoError(t, err)
	other, err := execute(t, "parse", grammar, tight, "--skip-space", "--digest")
	require.NoError(t, err)

	assert.Len(t, strings.TrimSpace(first), 64)
	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other, "spans differ")
}

func TestParse_Errors(t *testing.T) {
	dir := t.TempDir()
	grammar := writeFile(t, dir, "list.ebnf", listGrammar)
	input := writeFile(t, dir, "input.txt", "[1, 22]")

	_, err := execute(t, "parse", grammar, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `input.txt:1:4: expected "0"…"9"`)

	_, err = execute(t, "parse", grammar, input, "--skip-space", "--start", "Lsit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "List"?`)

	_, err = execute(t, "parse", grammar, input, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}
