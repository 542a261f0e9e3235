package fuzzy

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/fuzzint/internal/decimal"
	"github.com/roach88/fuzzint/internal/interval"
)

// Add returns the set whose interval is the interval sum and whose center is
// the sum of centers.
func (s Set) Add(o Set) (Set, error) {
	iv, err := s.interval.Add(o.interval)
	if err != nil {
		return Set{}, err
	}
	return s.combine("add", iv, decimal.Nearest.Add, &o.value)
}

// Sub returns the set whose interval is the interval difference and whose
// center is the difference of centers.
func (s Set) Sub(o Set) (Set, error) {
	iv, err := s.interval.Sub(o.interval)
	if err != nil {
		return Set{}, err
	}
	return s.combine("sub", iv, decimal.Nearest.Sub, &o.value)
}

// Mul returns the set whose interval is the interval product and whose center
// is the product of centers.
func (s Set) Mul(o Set) (Set, error) {
	iv, err := s.interval.Mul(o.interval)
	if err != nil {
		return Set{}, err
	}
	return s.combine("mul", iv, decimal.Nearest.Mul, &o.value)
}

// Div returns the set whose interval is the interval quotient and whose center
// is the quotient of centers. A divisor interval spanning zero fails with
// DIVISION_UNDEFINED before the center is computed.
func (s Set) Div(o Set) (Set, error) {
	iv, err := s.interval.Div(o.interval)
	if err != nil {
		return Set{}, err
	}
	return s.combine("div", iv, decimal.Nearest.Quo, &o.value)
}

type binaryFunc func(d, x, y *apd.Decimal) (apd.Condition, error)

// combine computes the result center and re-derives the deviations from iv.
// The center is rounded to nearest while iv is rounded outward, so the center
// stays inside iv.
func (s Set) combine(op string, iv interval.Interval, f binaryFunc, other *apd.Decimal) (Set, error) {
	var center apd.Decimal
	if _, err := f(&center, &s.value, other); err != nil {
		return Set{}, &interval.ArithmeticError{
			Code:     interval.ErrCodePrecision,
			Op:       op,
			Message:  "decimal condition trapped",
			Operands: []string{decimal.Format(&s.value), decimal.Format(other)},
			Err:      err,
		}
	}
	return FromInterval(&center, iv)
}

// Membership returns the triangular grade of x: 1 at the center, falling
// linearly to 0 at the interval bounds, and 0 outside. The grade is rounded to
// nearest.
func (s Set) Membership(x *apd.Decimal) (*apd.Decimal, error) {
	if err := interval.CheckFinite("membership", x); err != nil {
		return nil, err
	}
	if !s.interval.Contains(x) {
		return new(apd.Decimal), nil
	}
	c := x.Cmp(&s.value)
	if c == 0 {
		return decimal.Clone(decimal.One), nil
	}

	// Distance from the outer bound on x's side, over that side's deviation.
	var num apd.Decimal
	var dev *apd.Decimal
	if c < 0 {
		dev = &s.left
		if _, err := decimal.Exact.Sub(&num, x, s.interval.Start()); err != nil {
			return nil, fmt.Errorf("membership: %w", err)
		}
	} else {
		dev = &s.right
		if _, err := decimal.Exact.Sub(&num, s.interval.End(), x); err != nil {
			return nil, fmt.Errorf("membership: %w", err)
		}
	}
	grade := new(apd.Decimal)
	if _, err := decimal.Nearest.Quo(grade, &num, dev); err != nil {
		return nil, fmt.Errorf("membership: %w", err)
	}
	return grade, nil
}

// AlphaCut returns the interval of points whose grade is at least alpha:
// [value - (1-alpha)*left, value + (1-alpha)*right]. AlphaCut(0) is the whole
// interval and AlphaCut(1) is the center. Bounds are rounded outward.
func (s Set) AlphaCut(alpha *apd.Decimal) (interval.Interval, error) {
	if err := interval.CheckFinite("alpha-cut", alpha); err != nil {
		return interval.Interval{}, err
	}
	if alpha.Sign() < 0 || alpha.Cmp(decimal.One) > 0 {
		return interval.Interval{}, &Error{
			Code:    ErrCodeInvalidAlpha,
			Op:      "alpha-cut",
			Message: "alpha must lie in [0, 1]",
			Value:   decimal.Format(alpha),
		}
	}

	var k, dl, dr, lo, hi apd.Decimal
	if _, err := decimal.Exact.Sub(&k, decimal.One, alpha); err != nil {
		return interval.Interval{}, fmt.Errorf("alpha-cut: %w", err)
	}
	// The left reach is subtracted, so it is rounded up to push lo down.
	if _, err := decimal.Ceiling.Mul(&dl, &k, &s.left); err != nil {
		return interval.Interval{}, fmt.Errorf("alpha-cut: %w", err)
	}
	if _, err := decimal.Ceiling.Mul(&dr, &k, &s.right); err != nil {
		return interval.Interval{}, fmt.Errorf("alpha-cut: %w", err)
	}
	if _, err := decimal.Floor.Sub(&lo, &s.value, &dl); err != nil {
		return interval.Interval{}, fmt.Errorf("alpha-cut: %w", err)
	}
	if _, err := decimal.Ceiling.Add(&hi, &s.value, &dr); err != nil {
		return interval.Interval{}, fmt.Errorf("alpha-cut: %w", err)
	}
	return interval.New(&lo, &hi)
}
