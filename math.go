package dcalc

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
)

var decimalOne = decimal.NewFromInt(1)

// checkRange rejects values outside the representation. `nonZero` tells
// whether the exact result was non-zero, so that a value which rounded away
// to zero is reported instead of silently returned.
func (i *interpreter) checkRange(ast *Node, v decimal.Decimal, nonZero bool) (decimal.Decimal, Error) {
	if v.Abs().Cmp(i.limit) >= 0 {
		return decimal.Zero, i.tooLarge(ast)
	}
	if nonZero && v.IsZero() {
		return decimal.Zero, i.tooSmall(ast)
	}
	return v, nil
}

// fit rounds an exact result half away from zero to the configured number of
// fractional digits and checks its range.
func (i *interpreter) fit(ast *Node, exact decimal.Decimal) (decimal.Decimal, Error) {
	return i.checkRange(ast, exact.Round(i.precision), !exact.IsZero())
}

func (i *interpreter) fitFloat(ast *Node, f *big.Float) (decimal.Decimal, Error) {
	if f.Sign() == 0 {
		return decimal.Zero, nil
	}
	if new(big.Float).Abs(f).Cmp(toBigFloat(i.limit, f.Prec())) >= 0 {
		return decimal.Zero, i.tooLarge(ast)
	}
	v, err := fromBigFloat(f, i.precision+guardDigits)
	if err != nil {
		return decimal.Zero, NewError(ast.Offset, ast.Length, Overflow, "cannot represent %s", f.Text('g', 10))
	}
	return i.checkRange(ast, v.Round(i.precision), true)
}

func (i *interpreter) tooLarge(ast *Node) Error {
	return NewError(ast.Offset, ast.Length, Overflow, "result exceeds %d integer digits", i.maxDigits)
}

func (i *interpreter) tooSmall(ast *Node) Error {
	return NewError(ast.Offset, ast.Length, Overflow, "result too small for %d decimal places", i.precision)
}

func (i *interpreter) literal(ast *Node) (decimal.Decimal, Error) {
	v := ast.Value
	if !v.Round(i.precision).Equal(v) {
		return decimal.Zero, NewError(ast.Offset, ast.Length, Overflow, "number %s has more than %d decimal places", v, i.precision)
	}
	return i.checkRange(ast, v, false)
}

func (i *interpreter) multiply(ast *Node, left, right decimal.Decimal) (decimal.Decimal, Error) {
	if left.IsZero() || right.IsZero() {
		return decimal.Zero, nil
	}
	return i.fit(ast, left.Mul(right))
}

func (i *interpreter) divide(ast *Node, left, right decimal.Decimal) (decimal.Decimal, Error) {
	if right.IsZero() {
		return decimal.Zero, NewError(ast.Offset, ast.Length, DivisionByZero, "division by zero")
	}
	return i.checkRange(ast, left.DivRound(right, i.precision), !left.IsZero())
}

// modulus returns the truncated remainder, which takes the sign of the
// dividend: -7 % 3 is -1.
func (i *interpreter) modulus(ast *Node, left, right decimal.Decimal) (decimal.Decimal, Error) {
	if right.IsZero() {
		return decimal.Zero, NewError(ast.Offset, ast.Length, DivisionByZero, "modulo by zero")
	}
	return i.checkRange(ast, left.Mod(right), false)
}

func (i *interpreter) power(ast *Node, base, exp decimal.Decimal) (decimal.Decimal, Error) {
	switch {
	case exp.IsZero():
		return decimalOne, nil
	case exp.Equal(decimalOne):
		return base, nil
	case base.Equal(decimalOne):
		return decimalOne, nil
	}
	if exp.IsInteger() {
		return i.integerPower(ast, base, exp)
	}
	return i.fractionalPower(ast, base, exp)
}

// integerPower uses square-and-multiply, checking magnitude as it goes.
// Negative exponents take the reciprocal at the end.
//
// Intermediate steps keep enough fractional digits that rounding errors stay
// below the final precision even after being scaled up to the largest
// representable value, or inverted from the smallest.
func (i *interpreter) integerPower(ast *Node, base, exp decimal.Decimal) (decimal.Decimal, Error) {
	if base.IsZero() {
		if exp.IsNegative() {
			return decimal.Zero, NewError(ast.Offset, ast.Length, DivisionByZero, "zero raised to a negative power")
		}
		return decimal.Zero, nil
	}

	negative := exp.IsNegative()
	outOfRange := i.tooLarge
	if negative {
		outOfRange = i.tooSmall
	}

	n, ok := toInt64(exp.Abs())
	if !ok {
		// Only ±1 survives an exponent this large.
		if isOne(base) {
			if base.IsNegative() && isOdd(exp) {
				return decimalOne.Neg(), nil
			}
			return decimalOne, nil
		}
		if base.Abs().LessThan(decimalOne) != negative {
			return decimal.Zero, i.tooSmall(ast)
		}
		return decimal.Zero, i.tooLarge(ast)
	}

	scale := i.precision + guardDigits + i.maxDigits
	if negative {
		scale += i.maxDigits
	}
	result := decimalOne
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(scale)
			if result.Abs().Cmp(i.limit) >= 0 {
				return decimal.Zero, outOfRange(ast)
			}
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base).Round(scale)
			if base.Abs().Cmp(i.limit) >= 0 {
				return decimal.Zero, outOfRange(ast)
			}
		}
	}

	if negative {
		if result.IsZero() {
			return decimal.Zero, i.tooLarge(ast)
		}
		return i.checkRange(ast, decimalOne.DivRound(result, i.precision), true)
	}
	return i.checkRange(ast, result.Round(i.precision), true)
}

// fractionalPower computes exp(y ln x) on big.Float, bounding y ln x first so
// the exponential never leaves the representable range.
func (i *interpreter) fractionalPower(ast *Node, base, exp decimal.Decimal) (decimal.Decimal, Error) {
	if base.IsNegative() {
		return decimal.Zero, NewError(ast.Offset, ast.Length, DomainError, "fractional power %s of negative number %s", exp, base)
	}
	if base.IsZero() {
		if exp.IsNegative() {
			return decimal.Zero, NewError(ast.Offset, ast.Length, DivisionByZero, "zero raised to a negative power")
		}
		return decimal.Zero, nil
	}

	prec := i.floatPrec()
	t := bigfloat.Log(new(big.Float).SetPrec(prec), toBigFloat(base, prec))
	t.Mul(t, toBigFloat(exp, prec))

	ln10 := bigfloat.Log(new(big.Float).SetPrec(prec), new(big.Float).SetPrec(prec).SetInt64(10))
	upper := new(big.Float).SetPrec(prec).SetInt64(int64(i.maxDigits))
	upper.Mul(upper, ln10)
	if t.Cmp(upper) >= 0 {
		return decimal.Zero, i.tooLarge(ast)
	}
	lower := new(big.Float).SetPrec(prec).SetInt64(-int64(i.precision + guardDigits))
	lower.Mul(lower, ln10)
	if t.Cmp(lower) < 0 {
		return decimal.Zero, i.tooSmall(ast)
	}

	return i.fitFloat(ast, bigfloat.Exp(new(big.Float).SetPrec(prec), t))
}

func (i *interpreter) sqrt(ast *Node, v decimal.Decimal) (decimal.Decimal, Error) {
	if v.IsNegative() {
		return decimal.Zero, NewError(ast.Offset, ast.Length, DomainError, "cannot take square root of negative number %s", v)
	}
	if v.IsZero() {
		return decimal.Zero, nil
	}
	prec := i.floatPrec()
	return i.fitFloat(ast, new(big.Float).SetPrec(prec).Sqrt(toBigFloat(v, prec)))
}

func (i *interpreter) factorial(ast *Node, v decimal.Decimal) (decimal.Decimal, Error) {
	if !v.IsInteger() || v.IsNegative() {
		return decimal.Zero, NewError(ast.Offset, ast.Length, DomainError, "factorial requires a non-negative integer, got %s", v)
	}
	if v.GreaterThan(decimal.NewFromInt(i.maxFactorial)) {
		return decimal.Zero, NewError(ast.Offset, ast.Length, Overflow, "factorial argument %s exceeds %d", v, i.maxFactorial)
	}
	n := v.IntPart()
	result := decimalOne
	for k := int64(2); k <= n; k++ {
		result = result.Mul(decimal.NewFromInt(k))
		if result.Cmp(i.limit) >= 0 {
			return decimal.Zero, NewError(ast.Offset, ast.Length, Overflow, "%s! exceeds %d integer digits", v, i.maxDigits)
		}
	}
	return result, nil
}
