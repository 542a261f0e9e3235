// Package interval implements closed-interval arithmetic over arbitrary-precision
// decimals.
//
// An Interval [a, b] stands for every real x with a <= x <= b. Each operation
// returns an enclosure: an interval holding every result of the pointwise
// operation over all operand values. Bounds are rounded outward (lower bound
// toward -inf, upper toward +inf) at decimal.Precision digits, so rounding can
// widen a result but never drop a value from it.
//
// Construction rejects inverted bounds instead of swapping them, and division
// by an interval that spans zero fails instead of producing infinities.
//
// Two families of transcendental functions exist and are deliberately kept
// apart:
//   - Sin, Cos, Exp evaluate a truncated Taylor series in interval arithmetic.
//     The caller picks the number of terms, trading speed for precision.
//   - SinDirect, CosDirect, ExpDirect apply the float64 function to each bound.
//     They are cheap approximations, not enclosures.
package interval
