package dcalc

import "github.com/shopspring/decimal"

const (
	// DefaultPrecision is the number of fractional digits results are rounded
	// to.
	DefaultPrecision = 20

	// DefaultMaxDigits bounds the integer part: every value must stay strictly
	// below 10^DefaultMaxDigits in magnitude.
	DefaultMaxDigits = 50

	// DefaultMaxFactorial is the largest operand accepted by `!` before the
	// magnitude check even runs.
	DefaultMaxFactorial = 1000

	// DefaultMaxDepth limits how deeply the tree may nest, counting both
	// parentheses and chains of operators like `1+1+1`.
	DefaultMaxDepth = 256

	// MaxSetting is the largest value accepted by `Precision` and `MaxDigits`.
	// Larger values are ignored.
	MaxSetting = 100000
)

// Option configures parsing and evaluation limits.
type Option func(*config)

// Precision sets the number of fractional digits kept after every operation.
func Precision(digits int) Option {
	return func(c *config) {
		if digits >= 0 && digits <= MaxSetting {
			c.precision = int32(digits)
		}
	}
}

// MaxDigits sets the maximum number of integer digits a value may have.
func MaxDigits(digits int) Option {
	return func(c *config) {
		if digits > 0 && digits <= MaxSetting {
			c.maxDigits = int32(digits)
		}
	}
}

// MaxFactorial sets the largest accepted factorial operand.
func MaxFactorial(n int64) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxFactorial = n
		}
	}
}

// MaxDepth sets how deeply expressions may nest.
func MaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

type config struct {
	precision    int32
	maxDigits    int32
	maxFactorial int64
	maxDepth     int

	// limit is 10^maxDigits, the exclusive magnitude bound.
	limit decimal.Decimal
}

func newConfig(options []Option) *config {
	c := &config{
		precision:    DefaultPrecision,
		maxDigits:    DefaultMaxDigits,
		maxFactorial: DefaultMaxFactorial,
		maxDepth:     DefaultMaxDepth,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	c.limit = decimal.New(1, c.maxDigits)
	return c
}
