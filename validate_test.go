package dcalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(v int64) *Node {
	return &Node{Type: NodeLiteral, Value: decimal.NewFromInt(v)}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		ast  *Node
		ok   bool
	}{
		{"nil", nil, false},
		{"literal", lit(1), true},
		{"literal with operand", &Node{Type: NodeLiteral, Right: lit(1)}, false},
		{"unknown type", &Node{Type: NodeType(99), Left: lit(1), Right: lit(2)}, false},
		{"zero type", &Node{}, false},
		{"negate", &Node{Type: NodeNegate, Right: lit(1)}, true},
		{"negate without operand", &Node{Type: NodeNegate}, false},
		{"unary with left", &Node{Type: NodeSqrt, Left: lit(1), Right: lit(4)}, false},
		{"add", &Node{Type: NodeAdd, Left: lit(1), Right: lit(2)}, true},
		{"add missing right", &Node{Type: NodeAdd, Left: lit(1)}, false},
		{"nested invalid", &Node{Type: NodeMultiply, Left: lit(1), Right: &Node{Type: NodeDivide, Right: lit(2)}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.ast)
			if tc.ok {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, InvalidExpression, err.Kind())

			// Running a malformed tree reports instead of panicking.
			_, err = Run(tc.ast)
			require.NotNil(t, err)
			assert.Equal(t, InvalidExpression, err.Kind())
		})
	}
}

func TestRunBuiltTree(t *testing.T) {
	// (2 + 3)! / 4
	ast := &Node{
		Type:  NodeDivide,
		Left:  &Node{Type: NodeFactorial, Right: &Node{Type: NodeAdd, Left: lit(2), Right: lit(3)}},
		Right: lit(4),
	}
	v, err := Run(ast)
	require.Nil(t, err)
	assert.Equal(t, "30", v.String())
	assert.Equal(t, "(((2 + 3)!) / 4)", ast.String())
}
