package parsec

// ErrorSet is an ordered collection of error messages. Concatenation is O(1)
// and associative; the zero value is the empty set.
type ErrorSet struct {
	root *errorNode
	n    int
}

// errorNode is a leaf when both children are nil.
type errorNode struct {
	msg         string
	left, right *errorNode
}

// Errors creates a set holding msgs in order.
func Errors(msgs ...string) ErrorSet {
	var set ErrorSet
	for _, msg := range msgs {
		set = set.Concat(ErrorSet{root: &errorNode{msg: msg}, n: 1})
	}
	return set
}

// Concat returns the messages of e followed by the messages of other.
func (e ErrorSet) Concat(other ErrorSet) ErrorSet {
	if e.n == 0 {
		return other
	}
	if other.n == 0 {
		return e
	}
	return ErrorSet{
		root: &errorNode{left: e.root, right: other.root},
		n:    e.n + other.n,
	}
}

// Len returns the number of messages in the set.
func (e ErrorSet) Len() int {
	return e.n
}

// Messages flattens the set into a slice, first message first.
func (e ErrorSet) Messages() []string {
	if e.n == 0 {
		return nil
	}
	msgs := make([]string, 0, e.n)
	stack := []*errorNode{e.root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.left == nil && node.right == nil {
			msgs = append(msgs, node.msg)
			continue
		}
		stack = append(stack, node.right, node.left)
	}
	return msgs
}
