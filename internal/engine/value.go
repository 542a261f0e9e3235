package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/fuzzint/internal/decimal"
	"github.com/roach88/fuzzint/internal/fuzzy"
	"github.com/roach88/fuzzint/internal/interval"
	"github.com/roach88/fuzzint/internal/store"
)

// Kind names the type carried by a Value.
type Kind string

const (
	KindInterval Kind = "interval"
	KindFuzzy    Kind = "fuzzy"
	KindScalar   Kind = "scalar"
	KindBool     Kind = "bool"
)

// Value is an operand or result: exactly one of its payload fields is
// meaningful, selected by Kind.
type Value struct {
	Kind     Kind
	Interval interval.Interval
	Fuzzy    fuzzy.Set
	Scalar   *apd.Decimal
	Bool     bool
}

// IntervalValue wraps an interval.
func IntervalValue(iv interval.Interval) Value {
	return Value{Kind: KindInterval, Interval: iv}
}

// FuzzyValue wraps a fuzzy set.
func FuzzyValue(s fuzzy.Set) Value {
	return Value{Kind: KindFuzzy, Fuzzy: s}
}

// ScalarValue wraps a decimal.
func ScalarValue(d *apd.Decimal) Value {
	return Value{Kind: KindScalar, Scalar: d}
}

// BoolValue wraps a query answer.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// ParseLiteral reads an operand literal. The kind is inferred from the first
// character: "[" is an interval, "{" a fuzzy set, anything else a scalar.
// Interval and fuzzy parse failures are returned as their packages report
// them; an unreadable scalar fails with ErrCodeSyntax.
func ParseLiteral(s string) (Value, error) {
	lit := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(lit, "["):
		iv, err := interval.Parse(lit)
		if err != nil {
			return Value{}, err
		}
		return IntervalValue(iv), nil
	case strings.HasPrefix(lit, "{"):
		f, err := fuzzy.Parse(lit)
		if err != nil {
			return Value{}, err
		}
		return FuzzyValue(f), nil
	default:
		d, err := decimal.Parse(lit)
		if err != nil {
			return Value{}, &RequestError{
				Code:    ErrCodeSyntax,
				Message: "operand is not an interval, fuzzy set or decimal",
				Operand: s,
				Err:     err,
			}
		}
		return ScalarValue(d), nil
	}
}

// String renders the value in the literal syntax ParseLiteral accepts.
func (v Value) String() string {
	switch v.Kind {
	case KindInterval:
		return v.Interval.String()
	case KindFuzzy:
		return v.Fuzzy.String()
	case KindScalar:
		if v.Scalar == nil {
			return "0"
		}
		return decimal.Format(v.Scalar)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler using the String form.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Bounds returns the lower and upper bound of the value's interval: the
// interval itself, the fuzzy set's support, or [v, v] for a scalar.
// Returns ok=false for a bool.
func (v Value) Bounds() (lower, upper *apd.Decimal, ok bool) {
	switch v.Kind {
	case KindInterval:
		return v.Interval.Start(), v.Interval.End(), true
	case KindFuzzy:
		iv := v.Fuzzy.Interval()
		return iv.Start(), iv.End(), true
	case KindScalar:
		if v.Scalar == nil {
			return new(apd.Decimal), new(apd.Decimal), true
		}
		return decimal.Clone(v.Scalar), decimal.Clone(v.Scalar), true
	default:
		return nil, nil, false
	}
}

// Quantity returns the catalog row that stores v under name. The literal is
// the normalized String form; bools cannot be stored.
func (v Value) Quantity(name string) (store.Quantity, error) {
	lo, hi, ok := v.Bounds()
	if !ok {
		return store.Quantity{}, &RequestError{
			Code:    ErrCodeOperandKind,
			Message: fmt.Sprintf("cannot store a %s", v.Kind),
			Operand: v.String(),
		}
	}
	q := store.Quantity{Name: name, Kind: string(v.Kind), Literal: v.String()}
	q.Lower.Set(lo)
	q.Upper.Set(hi)
	return q, nil
}
