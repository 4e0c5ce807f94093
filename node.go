package dcalc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NodeType defines the type of the abstract syntax tree node.
type NodeType int

const (
	NodeUnknown NodeType = iota
	NodeLiteral

	// Unary nodes keep their operand in `Right`.
	NodeNegate
	NodeFactorial
	NodeSqrt
	NodeAbs

	// Binary nodes.
	NodeAdd
	NodeSubtract
	NodeMultiply
	NodeDivide
	NodePower
	NodeModulus
)

var nodeSymbols = map[NodeType]string{
	NodeLiteral:   "literal",
	NodeNegate:    "-",
	NodeFactorial: "!",
	NodeSqrt:      "sqrt",
	NodeAbs:       "abs",
	NodeAdd:       "+",
	NodeSubtract:  "-",
	NodeMultiply:  "*",
	NodeDivide:    "/",
	NodePower:     "^",
	NodeModulus:   "%",
}

func (t NodeType) String() string {
	if s, ok := nodeSymbols[t]; ok {
		return s
	}
	return fmt.Sprintf("node(%d)", int(t))
}

// IsUnary reports whether nodes of this type have exactly one operand.
func (t NodeType) IsUnary() bool {
	return t >= NodeNegate && t <= NodeAbs
}

// IsBinary reports whether nodes of this type have two operands.
func (t NodeType) IsBinary() bool {
	return t >= NodeAdd && t <= NodeModulus
}

// Node is a unit of the binary tree that makes up the abstract syntax tree.
// Each node owns its children; trees built by the parser never share
// subtrees.
type Node struct {
	Type  NodeType
	Value decimal.Decimal
	Left  *Node
	Right *Node

	// Offset and Length locate the source text the node was parsed from.
	Offset int
	Length int
}

// end returns the offset just past the node's source text.
func (n *Node) end() int {
	return n.Offset + n.Length
}

// String renders the tree fully parenthesized, e.g. `(2 ^ (3 ^ 2))`.
func (n *Node) String() string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n *Node) format(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	switch {
	case n.Type == NodeLiteral:
		b.WriteString(n.Value.String())
	case n.Type == NodeNegate:
		b.WriteString("(-")
		n.Right.format(b)
		b.WriteByte(')')
	case n.Type == NodeFactorial:
		b.WriteByte('(')
		n.Right.format(b)
		b.WriteString("!)")
	case n.Type == NodeSqrt, n.Type == NodeAbs:
		b.WriteString(n.Type.String())
		b.WriteByte('(')
		n.Right.format(b)
		b.WriteByte(')')
	case n.Type.IsBinary():
		b.WriteByte('(')
		n.Left.format(b)
		b.WriteString(" " + n.Type.String() + " ")
		n.Right.format(b)
		b.WriteByte(')')
	default:
		b.WriteString(n.Type.String())
	}
}

// Dot returns the node and its children as Graphviz statements for
// debugging. Wrap the output in `graph G { ... }` to render it.
func (n *Node) Dot(prefix string) string {
	if n == nil {
		return ""
	}
	id := "n" + prefix
	label := n.Type.String()
	if n.Type == NodeLiteral {
		label = n.Value.String()
	}
	out := fmt.Sprintf("%s [label=%q];", id, label)
	if n.Left != nil {
		out += fmt.Sprintf("\n%s -- n%sl;\n", id, prefix) + n.Left.Dot(prefix+"l")
	}
	if n.Right != nil {
		out += fmt.Sprintf("\n%s -- n%sr;\n", id, prefix) + n.Right.Dot(prefix+"r")
	}
	return out
}
