package dcalc

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind classifies an error. Kinds below `DivisionByZero` are produced by the
// lexer and parser, the rest by the interpreter.
type Kind int

const (
	KindUnknown Kind = iota

	// Parse errors.
	UnexpectedCharacter
	UnexpectedEndOfInput
	UnmatchedParenthesis
	MissingOperand
	UnknownFunction
	TrailingInput
	NestingTooDeep

	// Evaluation errors.
	DivisionByZero
	DomainError
	Overflow
	InvalidExpression
)

var kindNames = map[Kind]string{
	KindUnknown:          "unknown error",
	UnexpectedCharacter:  "unexpected character",
	UnexpectedEndOfInput: "unexpected end of input",
	UnmatchedParenthesis: "unmatched parenthesis",
	MissingOperand:       "missing operand",
	UnknownFunction:      "unknown function",
	TrailingInput:        "trailing input",
	NestingTooDeep:       "nesting too deep",
	DivisionByZero:       "division by zero",
	DomainError:          "domain error",
	Overflow:             "overflow",
	InvalidExpression:    "invalid expression",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Error lets a kind be used as a target for `errors.Is`.
func (k Kind) Error() string {
	return k.String()
}

// IsParse reports whether the kind is produced while lexing or parsing.
func (k Kind) IsParse() bool {
	return k > KindUnknown && k < DivisionByZero
}

// Error represents an error at a specific location.
type Error interface {
	Error() string

	// Kind returns the error classification.
	Kind() Kind

	// Offset returns the byte offset of the error within the expression.
	Offset() int

	// Length returns the number of bytes of the expression the error covers.
	Length() int

	// Pretty prints out a message with a pointer to the source location of the
	// error.
	Pretty(source string) string
}

type exprErr struct {
	kind    Kind
	offset  int
	length  int
	message string
}

func (e *exprErr) Error() string {
	return e.message
}

func (e *exprErr) Kind() Kind {
	return e.kind
}

func (e *exprErr) Offset() int {
	return e.offset
}

func (e *exprErr) Length() int {
	return e.length
}

// Is matches a `Kind` target so callers can write
// `errors.Is(err, dcalc.DivisionByZero)`.
func (e *exprErr) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.kind
}

func (e *exprErr) Pretty(source string) string {
	offset := e.offset
	if offset > len(source) {
		offset = len(source)
	}
	width := 1
	if e.length > 1 && offset+e.length <= len(source) {
		width = utf8.RuneCountInString(source[offset : offset+e.length])
	}
	return e.Error() + "\n" + source + "\n" +
		strings.Repeat(".", utf8.RuneCountInString(source[:offset])) +
		strings.Repeat("^", width)
}

// NewError creates a new error of the given kind at a specific location.
func NewError(offset, length int, kind Kind, format string, a ...interface{}) Error {
	return &exprErr{
		kind:    kind,
		offset:  offset,
		length:  length,
		message: fmt.Sprintf(format, a...),
	}
}
