package dcalc

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// bindingPowers for different tokens. Not listed means zero. The higher the
// number, the higher the token is in the order of operations.
var bindingPowers = map[TokenType]int{
	TokenAddSub:    10,
	TokenMulDiv:    15,
	TokenPower:     40,
	TokenFactorial: 50,
}

// negateBindingPower places unary minus above `* / %` but below `^` and `!`,
// so `-2^2` is `-(2^2)`.
const negateBindingPower = 30

// functions maps the recognized function names to their node type.
var functions = map[string]NodeType{
	"sqrt": NodeSqrt,
	"abs":  NodeAbs,
}

// functionNames is used in unknown function messages.
var functionNames = func() string {
	names := maps.Keys(functions)
	slices.Sort(names)
	return strings.Join(names, ", ")
}()

var binaryNodes = map[string]NodeType{
	"+": NodeAdd,
	"-": NodeSubtract,
	"*": NodeMultiply,
	"/": NodeDivide,
	"%": NodeModulus,
	"^": NodePower,
}

// Parser takes a lexer and parses its tokens into an abstract syntax tree.
type Parser interface {
	// Parse the expression and return the root node.
	Parse() (*Node, Error)
}

// NewParser creates a new parser that uses the given lexer to get and process
// tokens into an abstract syntax tree.
func NewParser(lexer Lexer, options ...Option) Parser {
	return &parser{
		lexer:    lexer,
		maxDepth: newConfig(options).maxDepth,
	}
}

// parser is an implementation of a Pratt or top-down operator precedence parser
type parser struct {
	lexer Lexer
	token Token

	// depth is the current recursion depth of `parse`, open is the number of
	// unclosed parentheses.
	depth    int
	maxDepth int
	open     int
}

func (p *parser) advance() Error {
	t, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.token = t
	return nil
}

// tooDeep reports the current token as exceeding the depth limit.
func (p *parser) tooDeep() Error {
	return NewError(p.token.Offset, len(p.token.Value), NestingTooDeep, "expression nested deeper than %d levels", p.maxDepth)
}

// parse counts both its own recursion and every operator it chains onto the
// left node against the depth limit, so the limit bounds the tree height.
func (p *parser) parse(bindingPower int) (*Node, Error) {
	chained := 0
	p.depth++
	defer func() { p.depth -= 1 + chained }()
	if p.depth > p.maxDepth {
		return nil, p.tooDeep()
	}

	leftToken := p.token
	if err := p.advance(); err != nil {
		return nil, err
	}
	leftNode, err := p.nud(leftToken)
	if err != nil {
		return nil, err
	}
	for bindingPower < bindingPowers[p.token.Type] {
		chained++
		p.depth++
		if p.depth > p.maxDepth {
			return nil, p.tooDeep()
		}
		currentToken := p.token
		if err := p.advance(); err != nil {
			return nil, err
		}
		leftNode, err = p.led(currentToken, leftNode)
		if err != nil {
			return nil, err
		}
	}
	return leftNode, nil
}

// closeGroup ensures the current token closes the group opened by `open`,
// advances past it and widens the node to cover the whole group.
func (p *parser) closeGroup(open Token, n *Node) (*Node, Error) {
	switch p.token.Type {
	case TokenRightParen:
	case TokenEOF:
		return nil, NewError(open.Offset, 1, UnmatchedParenthesis, "unclosed parenthesis")
	default:
		return nil, NewError(p.token.Offset, len(p.token.Value), UnexpectedCharacter, "expected ')' but found %s", p.token.describe())
	}
	closing := p.token
	if err := p.advance(); err != nil {
		return nil, err
	}
	p.open--
	n.Offset = open.Offset
	n.Length = closing.Offset + 1 - open.Offset
	return n, nil
}

// nud: null denotation. These nodes have no left context and only
// consume to the right. Examples: numbers, groups, function calls and unary
// minus.
func (p *parser) nud(t Token) (*Node, Error) {
	switch t.Type {
	case TokenNumber:
		v, err := decimal.NewFromString(t.Value)
		if err != nil {
			return nil, NewError(t.Offset, len(t.Value), UnexpectedCharacter, "invalid number %q", t.Value)
		}
		return &Node{Type: NodeLiteral, Value: v, Offset: t.Offset, Length: len(t.Value)}, nil
	case TokenLeftParen:
		p.open++
		result, err := p.parse(0)
		if err != nil {
			return nil, err
		}
		return p.closeGroup(t, result)
	case TokenIdentifier:
		typ, ok := functions[t.Value]
		if !ok {
			return nil, NewError(t.Offset, len(t.Value), UnknownFunction, "unknown function %q (expected one of %s)", t.Value, functionNames)
		}
		switch p.token.Type {
		case TokenLeftParen:
		case TokenEOF:
			return nil, NewError(p.token.Offset, 0, UnexpectedEndOfInput, "expected '(' after %s", t.Value)
		default:
			return nil, NewError(p.token.Offset, len(p.token.Value), UnexpectedCharacter, "expected '(' after %s but found %s", t.Value, p.token.describe())
		}
		open := p.token
		if err := p.advance(); err != nil {
			return nil, err
		}
		p.open++
		arg, err := p.parse(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.closeGroup(open, arg); err != nil {
			return nil, err
		}
		return &Node{Type: typ, Right: arg, Offset: t.Offset, Length: arg.end() - t.Offset}, nil
	case TokenAddSub:
		if t.Value != "-" {
			return nil, NewError(t.Offset, 1, MissingOperand, "missing left operand for %s", t.Value)
		}
		operand, err := p.parse(negateBindingPower)
		if err != nil {
			return nil, err
		}
		return &Node{Type: NodeNegate, Right: operand, Offset: t.Offset, Length: operand.end() - t.Offset}, nil
	case TokenMulDiv, TokenPower, TokenFactorial:
		return nil, NewError(t.Offset, 1, MissingOperand, "missing left operand for %s", t.Value)
	case TokenRightParen:
		if p.open == 0 {
			return nil, NewError(t.Offset, 1, UnmatchedParenthesis, "')' without matching '('")
		}
		return nil, NewError(t.Offset, 1, MissingOperand, "missing operand before ')'")
	case TokenEOF:
		return nil, NewError(t.Offset, 0, MissingOperand, "incomplete expression, missing operand at end of input")
	}
	return nil, NewError(t.Offset, len(t.Value), UnexpectedCharacter, "unexpected %s", t.describe())
}

// newNodeParseRight creates a new node with the right tree set to the
// output of recursively parsing until a lower binding power is encountered.
func (p *parser) newNodeParseRight(left *Node, t Token, bindingPower int) (*Node, Error) {
	right, err := p.parse(bindingPower)
	if err != nil {
		return nil, err
	}
	return &Node{
		Type:   binaryNodes[t.Value],
		Left:   left,
		Right:  right,
		Offset: left.Offset,
		Length: right.end() - left.Offset,
	}, nil
}

// led: left denotation. These tokens produce nodes that operate on a left
// operand, and for binary operators a right one too.
func (p *parser) led(t Token, n *Node) (*Node, Error) {
	switch t.Type {
	case TokenAddSub, TokenMulDiv:
		return p.newNodeParseRight(n, t, bindingPowers[t.Type])
	case TokenPower:
		// One less than its own power makes `^` right-associative.
		return p.newNodeParseRight(n, t, bindingPowers[t.Type]-1)
	case TokenFactorial:
		return &Node{Type: NodeFactorial, Right: n, Offset: n.Offset, Length: t.Offset + 1 - n.Offset}, nil
	}
	return nil, NewError(t.Offset, len(t.Value), UnexpectedCharacter, "unexpected %s", t.describe())
}

func (p *parser) Parse() (*Node, Error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.token.Type == TokenEOF {
		return nil, NewError(p.token.Offset, 0, UnexpectedEndOfInput, "empty expression")
	}
	ast, err := p.parse(0)
	if err != nil {
		return nil, err
	}
	switch p.token.Type {
	case TokenEOF:
		return ast, nil
	case TokenRightParen:
		return nil, NewError(p.token.Offset, 1, UnmatchedParenthesis, "')' without matching '('")
	}
	return nil, NewError(p.token.Offset, len(p.token.Value), TrailingInput, "unexpected %s after end of expression", p.token.describe())
}
