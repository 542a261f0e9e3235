package interval

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
)

// SinDirect applies math.Sin to each bound and returns the interval spanning
// the two results. It is cheaper than Sin but works in float64 and does not
// enclose interior extrema: SinDirect of [0, 3.2] misses sin(pi/2) = 1.
func (iv Interval) SinDirect() (Interval, error) {
	return iv.direct("sin-direct", math.Sin)
}

// CosDirect is the float64 bound-wise counterpart of Cos. See SinDirect.
func (iv Interval) CosDirect() (Interval, error) {
	return iv.direct("cos-direct", math.Cos)
}

// ExpDirect is the float64 bound-wise counterpart of Exp. exp is monotonic,
// so only float64 rounding separates it from the true range.
func (iv Interval) ExpDirect() (Interval, error) {
	return iv.direct("exp-direct", math.Exp)
}

func (iv Interval) direct(op string, f func(float64) float64) (Interval, error) {
	a, err := iv.start.Float64()
	if err != nil {
		return Interval{}, newPrecisionError(op, err)
	}
	b, err := iv.end.Float64()
	if err != nil {
		return Interval{}, newPrecisionError(op, err)
	}

	fa, fb := f(a), f(b)
	for _, v := range []float64{fa, fb} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Interval{}, newPrecisionError(op, fmt.Errorf("result %v is not finite", v))
		}
	}

	var lo, hi apd.Decimal
	if _, err := lo.SetFloat64(math.Min(fa, fb)); err != nil {
		return Interval{}, newPrecisionError(op, err)
	}
	if _, err := hi.SetFloat64(math.Max(fa, fb)); err != nil {
		return Interval{}, newPrecisionError(op, err)
	}
	return New(&lo, &hi)
}
