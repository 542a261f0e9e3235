package decimal

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Precision is the number of significant digits kept by every rounded result.
// It matches the IEEE 754 decimal64 budget.
const Precision = 16

var (
	// Nearest rounds half-even. Used for scalar results such as fuzzy centers.
	Nearest = newContext(apd.RoundHalfEven)

	// Floor rounds toward negative infinity. Used for lower bounds.
	Floor = newContext(apd.RoundFloor)

	// Ceiling rounds toward positive infinity. Used for upper bounds.
	Ceiling = newContext(apd.RoundCeiling)

	// Exact performs unrounded addition and subtraction.
	// Quo is not available on it (apd requires a precision for division).
	Exact = apd.BaseContext.WithPrecision(0)
)

func newContext(r apd.Rounder) *apd.Context {
	c := apd.BaseContext.WithPrecision(Precision)
	c.Rounding = r
	return c
}

// Zero and One are shared read-only constants. Never pass them as a result
// argument to an apd operation.
var (
	Zero = apd.New(0, 0)
	One  = apd.New(1, 0)
)

// Parse reads a finite decimal literal such as "2", "-0.125" or "1E-3".
// Surrounding whitespace is ignored.
func Parse(s string) (*apd.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty decimal literal")
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("decimal %q is not finite", s)
	}
	return d, nil
}

// MustParse is Parse for literals known to be valid. Panics otherwise.
func MustParse(s string) *apd.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromInt64 returns n as an exact decimal.
func FromInt64(n int64) *apd.Decimal {
	return apd.New(n, 0)
}

// Clone returns a copy of d that shares no memory with it.
func Clone(d *apd.Decimal) *apd.Decimal {
	return new(apd.Decimal).Set(d)
}

// Min returns the smaller of a and b (a when equal). The argument itself is
// returned, not a copy.
func Min(a, b *apd.Decimal) *apd.Decimal {
	if b.Cmp(a) < 0 {
		return b
	}
	return a
}

// Max returns the larger of a and b (a when equal). The argument itself is
// returned, not a copy.
func Max(a, b *apd.Decimal) *apd.Decimal {
	if b.Cmp(a) > 0 {
		return b
	}
	return a
}

// Format renders d in plain notation with trailing zeros removed:
// 8 -> "8", 0.5000 -> "0.5", 1E+2 -> "100". Negative zero prints as "0".
func Format(d *apd.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	var r apd.Decimal
	r.Reduce(d)
	return r.Text('f')
}

// Factorial returns n! exactly. Negative n is treated as 0 (0! = 1).
func Factorial(n int) *apd.Decimal {
	var acc, k apd.BigInt
	acc.SetInt64(1)
	for i := 2; i <= n; i++ {
		k.SetInt64(int64(i))
		acc.Mul(&acc, &k)
	}
	return apd.NewWithBigInt(&acc, 0)
}
