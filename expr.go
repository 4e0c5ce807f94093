// Package dcalc parses and evaluates calculator expressions using
// fixed-precision decimal arithmetic.
//
// Expressions support `+ - * / % ^`, unary minus, postfix factorial `!`,
// parentheses and the functions `sqrt(...)` and `abs(...)`. Every result is
// rounded half away from zero to `DefaultPrecision` fractional digits and
// must stay below 10^`DefaultMaxDigits`; anything else is an `Overflow`
// error rather than a silently truncated value.
//
// All functions are pure and safe for concurrent use.
package dcalc

import "github.com/shopspring/decimal"

// Parse an expression and return the abstract syntax tree.
func Parse(expression string, options ...Option) (*Node, Error) {
	l := NewLexer(expression)
	p := NewParser(l, options...)
	return p.Parse()
}

// Run executes an AST and returns the output.
func Run(ast *Node, options ...Option) (decimal.Decimal, Error) {
	i := NewInterpreter(ast, options...)
	return i.Run()
}

// Eval is a convenience function which lexes, parses, and executes an
// expression.
func Eval(expression string, options ...Option) (decimal.Decimal, Error) {
	ast, err := Parse(expression, options...)
	if err != nil {
		return decimal.Zero, err
	}
	return Run(ast, options...)
}

// Compute evaluates an expression for display. It returns the value without
// trailing fractional zeros, or a message starting with "Error: ".
func Compute(expression string, options ...Option) string {
	v, err := Eval(expression, options...)
	if err != nil {
		return "Error: " + err.Error()
	}
	return v.String()
}
