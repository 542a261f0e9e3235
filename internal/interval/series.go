package interval

import (
	"github.com/roach88/fuzzint/internal/decimal"
)

// unit is [1, 1], the leading term of cos and exp.
var unit = MustNew(decimal.One, decimal.One)

// Sin approximates sin over the interval with the first terms terms of its
// Taylor series, x - x^3/3! + x^5/5! - ..., each term evaluated in interval
// arithmetic. More terms give a closer approximation at the cost of two
// interval multiplications per term.
func (iv Interval) Sin(terms int) (Interval, error) {
	if terms < 1 {
		return Interval{}, newInvalidTerms("sin", terms)
	}
	return iv.alternatingSeries(terms, iv, 1)
}

// Cos approximates cos over the interval with the first terms terms of
// 1 - x^2/2! + x^4/4! - ..., starting from the constant term [1, 1].
func (iv Interval) Cos(terms int) (Interval, error) {
	if terms < 1 {
		return Interval{}, newInvalidTerms("cos", terms)
	}
	return iv.alternatingSeries(terms, unit, 0)
}

// alternatingSeries sums power/exponent! for terms steps, adding on even steps
// and subtracting on odd ones. Between steps the running power is multiplied
// by the interval twice and the exponent grows by two.
func (iv Interval) alternatingSeries(terms int, power Interval, exponent int) (Interval, error) {
	var sum Interval
	for k := 0; k < terms; k++ {
		if k > 0 {
			sq, err := power.Mul(iv)
			if err != nil {
				return Interval{}, err
			}
			if power, err = sq.Mul(iv); err != nil {
				return Interval{}, err
			}
			exponent += 2
		}

		term, err := power.DivScalar(decimal.Factorial(exponent))
		if err != nil {
			return Interval{}, err
		}
		if k%2 == 0 {
			sum, err = sum.Add(term)
		} else {
			sum, err = sum.Sub(term)
		}
		if err != nil {
			return Interval{}, err
		}
	}
	return sum, nil
}

// Exp approximates e^x with sum_{i<terms} x^i/i!. The running term starts at
// [1, 1] and is multiplied by x/i at step i, so no factorial is formed.
func (iv Interval) Exp(terms int) (Interval, error) {
	if terms < 1 {
		return Interval{}, newInvalidTerms("exp", terms)
	}

	term := unit
	sum := term
	for i := 1; i < terms; i++ {
		ratio, err := iv.DivInt(int64(i))
		if err != nil {
			return Interval{}, err
		}
		if term, err = term.Mul(ratio); err != nil {
			return Interval{}, err
		}
		if sum, err = sum.Add(term); err != nil {
			return Interval{}, err
		}
	}
	return sum, nil
}
