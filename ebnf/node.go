package ebnf

import (
	"fmt"
	"strings"

	"github.com/dhamidi/parsec/buffer"
)

// Span represents a range in the parsed input.
type Span struct {
	Start buffer.Location
	End   buffer.Location
}

// Node is a node of the concrete syntax tree built by a compiled grammar.
// Productions with a lexical (lowercase) name and literal tokens become
// terminals carrying the matched text; other productions become interior
// nodes with children.
type Node struct {
	Kind     string  // production name, or the quoted literal for tokens
	Text     string  // matched text, for terminals
	Children []*Node // child nodes (nil for terminals)
	Terminal bool
	Span     Span
}

// IsTerminal returns true if this is a leaf node.
func (n *Node) IsTerminal() bool {
	return n.Terminal
}

// Find returns the first node of the given kind in depth-first order.
func (n *Node) Find(kind string) *Node {
	stack := []*Node{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.Kind == kind {
			return node
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
	return nil
}

// String renders the tree as an s-expression.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n.Terminal {
		if n.Kind == fmt.Sprintf("%q", n.Text) {
			b.WriteString(n.Kind)
			return
		}
		fmt.Fprintf(b, "(%s %q)", n.Kind, n.Text)
		return
	}
	b.WriteString("(")
	b.WriteString(n.Kind)
	for _, child := range n.Children {
		b.WriteString(" ")
		child.write(b)
	}
	b.WriteString(")")
}

func newTerminal(kind, text string, span Span) *Node {
	return &Node{Kind: kind, Text: text, Terminal: true, Span: span}
}

func newNonTerminal(kind string, children []*Node, span Span) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Kind: kind, Children: children, Span: span}
}
