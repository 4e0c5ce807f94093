package dcalc

import (
	"fmt"
	"unicode/utf8"
)

// TokenType defines the type of token produced by the lexer.
type TokenType string

// Token
const (
	TokenUnknown    TokenType = ""
	TokenIdentifier TokenType = "identifier"
	TokenNumber     TokenType = "number"
	TokenLeftParen  TokenType = "left-paren"
	TokenRightParen TokenType = "right-paren"
	TokenAddSub     TokenType = "add-sub"
	TokenMulDiv     TokenType = "mul-div"
	TokenPower      TokenType = "power"
	TokenFactorial  TokenType = "factorial"
	TokenEOF        TokenType = "eof"
)

var basic = map[rune]TokenType{
	'(': TokenLeftParen,
	')': TokenRightParen,
	'+': TokenAddSub,
	'-': TokenAddSub,
	'*': TokenMulDiv,
	'/': TokenMulDiv,
	'%': TokenMulDiv,
	'^': TokenPower,
	'!': TokenFactorial,
}

// Token describes a single token produced by the lexer.
type Token struct {
	Type   TokenType
	Value  string
	Offset int
}

func (t Token) String() string {
	return fmt.Sprintf("%d (%s) %s", t.Offset, t.Type, t.Value)
}

// describe renders the token for error messages.
func (t Token) describe() string {
	if t.Type == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Value)
}

// Lexer returns tokens from an input expression.
type Lexer interface {
	// Next returns the next token from the expression. Once the input is
	// exhausted every call returns a `TokenEOF` token.
	Next() (Token, Error)
}

// NewLexer creates a new lexer for the given expression.
func NewLexer(expression string) Lexer {
	return &lexer{
		expression: expression,
	}
}

type lexer struct {
	expression string
	pos        int
	lastWidth  int
}

// next returns the next rune in the expression at the current position.
func (l *lexer) next() rune {
	if l.pos >= len(l.expression) {
		l.lastWidth = 0
		return -1
	}
	r, w := utf8.DecodeRuneInString(l.expression[l.pos:])
	l.pos += w
	l.lastWidth = w
	return r
}

// back moves back one rune.
func (l *lexer) back() {
	l.pos -= l.lastWidth
}

func (l *lexer) newToken(typ TokenType, value string) Token {
	return Token{
		Type:   typ,
		Value:  value,
		Offset: l.pos - len(value),
	}
}

// consumeNumber reads digits with at most one decimal point. A point must be
// followed by at least one digit.
func (l *lexer) consumeNumber() (Token, Error) {
	start := l.pos - l.lastWidth
	dot := -1
	if l.expression[start] == '.' {
		dot = start
	}
	for {
		r := l.next()
		if r == '.' {
			if dot >= 0 {
				return Token{}, NewError(l.pos-1, 1, UnexpectedCharacter, "unexpected second decimal point in number")
			}
			dot = l.pos - 1
			continue
		}
		if r < '0' || r > '9' {
			l.back()
			break
		}
	}
	if dot >= 0 && dot == l.pos-1 {
		return Token{}, NewError(dot, 1, UnexpectedCharacter, "expected digit after decimal point")
	}
	return l.newToken(TokenNumber, l.expression[start:l.pos]), nil
}

// consumeIdentifier reads ASCII letters. Whether the name is a known function
// is decided by the parser.
func (l *lexer) consumeIdentifier() Token {
	start := l.pos - l.lastWidth
	for {
		r := l.next()
		if !isLetter(r) {
			l.back()
			break
		}
	}
	return l.newToken(TokenIdentifier, l.expression[start:l.pos])
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (l *lexer) Next() (Token, Error) {
	r := l.next()
	for r == ' ' || r == '\t' || r == '\r' || r == '\n' {
		r = l.next()
	}
	switch {
	case r == -1:
		return l.newToken(TokenEOF, ""), nil
	case basic[r] != TokenUnknown:
		return l.newToken(basic[r], l.expression[l.pos-l.lastWidth:l.pos]), nil
	case r == '.', r >= '0' && r <= '9':
		return l.consumeNumber()
	case isLetter(r):
		return l.consumeIdentifier(), nil
	}

	offset := l.pos - l.lastWidth
	if r == utf8.RuneError && l.lastWidth == 1 {
		return Token{}, NewError(offset, 1, UnexpectedCharacter, "invalid UTF-8 at offset %d", offset)
	}
	return Token{}, NewError(offset, l.lastWidth, UnexpectedCharacter, "unexpected character %q", r)
}
