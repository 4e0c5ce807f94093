package dcalc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	assert.Equal(t, "division by zero", DivisionByZero.String())
	assert.Equal(t, "unknown error", Kind(-1).String())
	assert.True(t, UnmatchedParenthesis.IsParse())
	assert.True(t, NestingTooDeep.IsParse())
	assert.False(t, Overflow.IsParse())
	assert.False(t, KindUnknown.IsParse())
}

func TestErrorIs(t *testing.T) {
	err := NewError(3, 1, Overflow, "too big")
	wrapped := fmt.Errorf("computing: %w", err)
	assert.True(t, errors.Is(wrapped, Overflow))
	assert.False(t, errors.Is(wrapped, DomainError))

	var e Error
	assert.True(t, errors.As(wrapped, &e))
	assert.Equal(t, 3, e.Offset())
}

func TestPretty(t *testing.T) {
	err := NewError(4, 3, UnknownFunction, "unknown function")
	assert.Equal(t, "unknown function\n2 + foo(1)\n....^^^", err.Pretty("2 + foo(1)"))

	// Offsets past the end point just after the source.
	err = NewError(10, 0, MissingOperand, "missing")
	assert.Equal(t, "missing\n1 +\n...^", err.Pretty("1 +"))

	// Multi-byte runes count as one column.
	_, perr := Parse("π+1")
	assert.Equal(t, "unexpected character 'π'\nπ+1\n^", perr.Pretty("π+1"))
	_, perr = Parse("1+π")
	assert.Equal(t, "unexpected character 'π'\n1+π\n..^", perr.Pretty("1+π"))
}
