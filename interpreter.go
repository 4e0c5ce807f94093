package dcalc

import "github.com/shopspring/decimal"

// Interpreter executes expression AST programs.
type Interpreter interface {
	Run() (decimal.Decimal, Error)
}

// NewInterpreter returns an interpreter for the given AST.
func NewInterpreter(ast *Node, options ...Option) Interpreter {
	return &interpreter{
		ast:    ast,
		config: newConfig(options),
	}
}

type interpreter struct {
	*config
	ast *Node
}

func (i *interpreter) Run() (decimal.Decimal, Error) {
	if err := Validate(i.ast); err != nil {
		return decimal.Zero, err
	}
	return i.run(i.ast)
}

// run evaluates the children of a node before combining them.
func (i *interpreter) run(ast *Node) (decimal.Decimal, Error) {
	switch {
	case ast.Type == NodeLiteral:
		return i.literal(ast)
	case ast.Type.IsUnary():
		operand, err := i.run(ast.Right)
		if err != nil {
			return decimal.Zero, err
		}
		switch ast.Type {
		case NodeNegate:
			return operand.Neg(), nil
		case NodeAbs:
			return operand.Abs(), nil
		case NodeSqrt:
			return i.sqrt(ast, operand)
		case NodeFactorial:
			return i.factorial(ast, operand)
		}
	case ast.Type.IsBinary():
		left, err := i.run(ast.Left)
		if err != nil {
			return decimal.Zero, err
		}
		right, err := i.run(ast.Right)
		if err != nil {
			return decimal.Zero, err
		}
		switch ast.Type {
		case NodeAdd:
			return i.checkRange(ast, left.Add(right), false)
		case NodeSubtract:
			return i.checkRange(ast, left.Sub(right), false)
		case NodeMultiply:
			return i.multiply(ast, left, right)
		case NodeDivide:
			return i.divide(ast, left, right)
		case NodeModulus:
			return i.modulus(ast, left, right)
		case NodePower:
			return i.power(ast, left, right)
		}
	}
	return decimal.Zero, NewError(ast.Offset, ast.Length, InvalidExpression, "unexpected node %s", ast.Type)
}
