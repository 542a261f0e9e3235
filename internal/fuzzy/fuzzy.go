// Package fuzzy implements triangular fuzzy numbers on top of package interval.
//
// A Set has a center (membership 1) and left and right deviations that slope
// linearly to membership 0 at the bounds of its interval
// [value-left, value+right]. Arithmetic is anchored to the interval: the
// result interval comes from the interval operation, the center from the
// scalar operation, and the deviations are re-derived as the gaps between
// them. Deviations are never combined directly, so every enclosure property
// of package interval carries over.
package fuzzy

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/fuzzint/internal/decimal"
	"github.com/roach88/fuzzint/internal/interval"
)

// Set is an immutable triangular fuzzy number. The zero value is the crisp
// number 0 with interval [0, 0].
type Set struct {
	value    apd.Decimal
	left     apd.Decimal
	right    apd.Decimal
	interval interval.Interval
}

// New returns the set centered at value with the given deviations. The
// interval [value-left, value+right] is computed exactly. An inverted interval
// fails with the interval package's INVALID_RANGE. A negative deviation that
// still leaves the interval ordered fails with ErrCodeNegativeDeviation.
// NaN or infinite inputs fail with the interval package's NON_FINITE.
func New(value, left, right *apd.Decimal) (Set, error) {
	if err := interval.CheckFinite("new", value, left, right); err != nil {
		return Set{}, err
	}
	var lo, hi apd.Decimal
	if _, err := decimal.Exact.Sub(&lo, value, left); err != nil {
		return Set{}, fmt.Errorf("fuzzy set lower bound: %w", err)
	}
	if _, err := decimal.Exact.Add(&hi, value, right); err != nil {
		return Set{}, fmt.Errorf("fuzzy set upper bound: %w", err)
	}
	iv, err := interval.New(&lo, &hi)
	if err != nil {
		return Set{}, err
	}
	if left.Sign() < 0 || right.Sign() < 0 {
		return Set{}, &Error{
			Code:    ErrCodeNegativeDeviation,
			Op:      "new",
			Message: "deviations must be non-negative",
			Value:   decimal.Format(value),
			Range:   iv.String(),
		}
	}
	return FromInterval(value, iv)
}

// FromInterval returns the set centered at value spanning iv, with
// left = value - start and right = end - value. A center outside iv fails
// with ErrCodeCenterOutside, so both deviations are always non-negative.
func FromInterval(value *apd.Decimal, iv interval.Interval) (Set, error) {
	if err := interval.CheckFinite("new", value); err != nil {
		return Set{}, err
	}
	if !iv.Contains(value) {
		return Set{}, &Error{
			Code:    ErrCodeCenterOutside,
			Op:      "new",
			Message: "center lies outside the interval",
			Value:   decimal.Format(value),
			Range:   iv.String(),
		}
	}

	var s Set
	s.value.Set(value)
	s.interval = iv
	if _, err := decimal.Exact.Sub(&s.left, value, iv.Start()); err != nil {
		return Set{}, fmt.Errorf("fuzzy set left deviation: %w", err)
	}
	if _, err := decimal.Exact.Sub(&s.right, iv.End(), value); err != nil {
		return Set{}, fmt.Errorf("fuzzy set right deviation: %w", err)
	}
	return s, nil
}

// Crisp returns the set with zero deviations at v.
func Crisp(v *apd.Decimal) (Set, error) {
	iv, err := interval.Point(v)
	if err != nil {
		return Set{}, err
	}
	var s Set
	s.value.Set(v)
	s.interval = iv
	return s, nil
}

// Parse reads the textual form produced by String: "{value, left, right}".
func Parse(s string) (Set, error) {
	body := strings.TrimSpace(s)
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		return Set{}, syntaxError(s, fmt.Errorf("fuzzy set literal must be enclosed in { }"))
	}
	parts := strings.Split(body[1:len(body)-1], ",")
	if len(parts) != 3 {
		return Set{}, syntaxError(s, fmt.Errorf("fuzzy set literal needs value, left and right"))
	}
	nums := make([]*apd.Decimal, len(parts))
	for i, p := range parts {
		d, err := decimal.Parse(p)
		if err != nil {
			return Set{}, syntaxError(s, err)
		}
		nums[i] = d
	}
	return New(nums[0], nums[1], nums[2])
}

// Value returns a copy of the center.
func (s Set) Value() *apd.Decimal { return decimal.Clone(&s.value) }

// Left returns a copy of the left deviation.
func (s Set) Left() *apd.Decimal { return decimal.Clone(&s.left) }

// Right returns a copy of the right deviation.
func (s Set) Right() *apd.Decimal { return decimal.Clone(&s.right) }

// Interval returns the support [value-left, value+right].
func (s Set) Interval() interval.Interval { return s.interval }

// String renders the set as "{value, left, right}".
func (s Set) String() string {
	return "{" + decimal.Format(&s.value) + ", " + decimal.Format(&s.left) + ", " + decimal.Format(&s.right) + "}"
}

// MarshalText implements encoding.TextMarshaler using the String form.
func (s Set) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (s *Set) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Equal reports whether centers and intervals compare equal numerically.
func (s Set) Equal(o Set) bool {
	return s.value.Cmp(&o.value) == 0 && s.interval.Equal(o.interval)
}

// Contains reports whether v lies in the set's interval.
func (s Set) Contains(v *apd.Decimal) bool {
	return s.interval.Contains(v)
}

// Intersects reports whether the set's interval meets iv.
func (s Set) Intersects(iv interval.Interval) bool {
	return s.interval.Intersects(iv)
}
