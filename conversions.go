package dcalc

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// floatPrec returns the mantissa size in bits used for roots and fractional
// powers: enough for every integer and fractional digit a value may carry plus
// the guard digits, with 64 spare bits for error in Log and Exp.
func (c *config) floatPrec() uint {
	digits := int64(c.precision) + int64(c.maxDigits) + guardDigits
	return uint(digits*3322/1000) + 64
}

// guardDigits are extra fractional digits kept while multiplying repeatedly
// or converting from big.Float, before the final rounding.
const guardDigits = 10

var (
	decimalTwo = decimal.NewFromInt(2)
	maxInt64   = decimal.NewFromInt(math.MaxInt64)
	minInt64   = decimal.NewFromInt(math.MinInt64)
)

func toBigFloat(d decimal.Decimal, prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetRat(d.Rat())
}

// fromBigFloat converts f keeping `digits` fractional digits. The caller
// is responsible for checking the magnitude first.
func fromBigFloat(f *big.Float, digits int32) (decimal.Decimal, error) {
	return decimal.NewFromString(f.Text('f', int(digits)))
}

// toInt64 returns the value as an int64 if it is an integer in range.
func toInt64(d decimal.Decimal) (int64, bool) {
	if !d.IsInteger() || d.GreaterThan(maxInt64) || d.LessThan(minInt64) {
		return 0, false
	}
	return d.IntPart(), true
}

func isOdd(d decimal.Decimal) bool {
	return !d.Mod(decimalTwo).IsZero()
}

// isOne reports whether |d| == 1.
func isOne(d decimal.Decimal) bool {
	return d.Abs().Equal(decimal.NewFromInt(1))
}
