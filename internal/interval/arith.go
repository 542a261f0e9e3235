package interval

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/fuzzint/internal/decimal"
)

// Add returns [start+o.start, end+o.end].
func (iv Interval) Add(o Interval) (Interval, error) {
	var lo, hi apd.Decimal
	if _, err := decimal.Floor.Add(&lo, &iv.start, &o.start); err != nil {
		return Interval{}, newPrecisionError("add", err)
	}
	if _, err := decimal.Ceiling.Add(&hi, &iv.end, &o.end); err != nil {
		return Interval{}, newPrecisionError("add", err)
	}
	return New(&lo, &hi)
}

// Sub returns [start-o.end, end-o.start], the narrowest interval holding
// every difference a-b with a in iv and b in o.
func (iv Interval) Sub(o Interval) (Interval, error) {
	var lo, hi apd.Decimal
	if _, err := decimal.Floor.Sub(&lo, &iv.start, &o.end); err != nil {
		return Interval{}, newPrecisionError("sub", err)
	}
	if _, err := decimal.Ceiling.Sub(&hi, &iv.end, &o.start); err != nil {
		return Interval{}, newPrecisionError("sub", err)
	}
	return New(&lo, &hi)
}

// Mul returns [min, max] over the four boundary products. Which product is
// extremal depends on the signs of all four bounds, so every one is computed.
func (iv Interval) Mul(o Interval) (Interval, error) {
	pairs := [4][2]*apd.Decimal{
		{&iv.start, &o.start},
		{&iv.start, &o.end},
		{&iv.end, &o.start},
		{&iv.end, &o.end},
	}

	var lo, hi *apd.Decimal
	for _, p := range pairs {
		down, up := new(apd.Decimal), new(apd.Decimal)
		if _, err := decimal.Floor.Mul(down, p[0], p[1]); err != nil {
			return Interval{}, newPrecisionError("mul", err)
		}
		if _, err := decimal.Ceiling.Mul(up, p[0], p[1]); err != nil {
			return Interval{}, newPrecisionError("mul", err)
		}
		if lo == nil || down.Cmp(lo) < 0 {
			lo = down
		}
		if hi == nil || up.Cmp(hi) > 0 {
			hi = up
		}
	}
	return New(lo, hi)
}

// Reciprocal returns [min(1/start, 1/end), max(1/start, 1/end)].
// It fails with ErrCodeDivisionUndefined when the interval spans zero.
func (iv Interval) Reciprocal() (Interval, error) {
	if iv.SpansZero() {
		return Interval{}, newDivisionUndefined("recip", iv)
	}

	var sDown, sUp, eDown, eUp apd.Decimal
	quos := []struct {
		ctx *apd.Context
		d   *apd.Decimal
		y   *apd.Decimal
	}{
		{decimal.Floor, &sDown, &iv.start},
		{decimal.Ceiling, &sUp, &iv.start},
		{decimal.Floor, &eDown, &iv.end},
		{decimal.Ceiling, &eUp, &iv.end},
	}
	for _, q := range quos {
		if _, err := q.ctx.Quo(q.d, decimal.One, q.y); err != nil {
			return Interval{}, newPrecisionError("recip", err)
		}
	}
	return New(decimal.Min(&sDown, &eDown), decimal.Max(&sUp, &eUp))
}

// Div returns iv * (1/o). It fails with ErrCodeDivisionUndefined when o spans
// zero, including the degenerate divisor [0, 0].
func (iv Interval) Div(o Interval) (Interval, error) {
	if o.SpansZero() {
		return Interval{}, newDivisionUndefined("div", o)
	}
	r, err := o.Reciprocal()
	if err != nil {
		return Interval{}, err
	}
	return iv.Mul(r)
}

// DivScalar divides both bounds by s. A negative s reverses the order of the
// bounds, so they are swapped to keep start <= end. Fails with
// ErrCodeDivisionByZero when s is zero and ErrCodeNonFinite when s is NaN or
// infinite.
func (iv Interval) DivScalar(s *apd.Decimal) (Interval, error) {
	if err := CheckFinite("divs", s); err != nil {
		return Interval{}, err
	}
	if s.IsZero() {
		return Interval{}, &ArithmeticError{
			Code:     ErrCodeDivisionByZero,
			Op:       "divs",
			Message:  "division by zero",
			Operands: []string{iv.String(), decimal.Format(s)},
		}
	}

	a, b := &iv.start, &iv.end
	if s.Sign() < 0 {
		a, b = b, a
	}
	var lo, hi apd.Decimal
	if _, err := decimal.Floor.Quo(&lo, a, s); err != nil {
		return Interval{}, newPrecisionError("divs", err)
	}
	if _, err := decimal.Ceiling.Quo(&hi, b, s); err != nil {
		return Interval{}, newPrecisionError("divs", err)
	}
	return New(&lo, &hi)
}

// DivInt is DivScalar for an integer divisor.
func (iv Interval) DivInt(n int64) (Interval, error) {
	return iv.DivScalar(decimal.FromInt64(n))
}
