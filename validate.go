package dcalc

// Validate checks that a tree is well formed before it is evaluated: every
// node has a known type and exactly the children its type requires. Trees
// returned by `Parse` always pass; hand-built trees may not.
func Validate(ast *Node) Error {
	if ast == nil {
		return NewError(0, 0, InvalidExpression, "missing expression")
	}
	switch {
	case ast.Type == NodeLiteral:
		if ast.Left != nil || ast.Right != nil {
			return NewError(ast.Offset, ast.Length, InvalidExpression, "literal %s cannot have operands", ast.Value)
		}
		return nil
	case ast.Type.IsUnary():
		if ast.Left != nil {
			return NewError(ast.Offset, ast.Length, InvalidExpression, "%s takes a single operand", ast.Type)
		}
		if ast.Right == nil {
			return NewError(ast.Offset, ast.Length, InvalidExpression, "%s is missing its operand", ast.Type)
		}
		return Validate(ast.Right)
	case ast.Type.IsBinary():
		if ast.Left == nil || ast.Right == nil {
			return NewError(ast.Offset, ast.Length, InvalidExpression, "%s is missing an operand", ast.Type)
		}
		if err := Validate(ast.Left); err != nil {
			return err
		}
		return Validate(ast.Right)
	}
	return NewError(ast.Offset, ast.Length, InvalidExpression, "unknown node type %s", ast.Type)
}
