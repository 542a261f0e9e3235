package engine

import (
	"fmt"
	"slices"

	"github.com/roach88/fuzzint/internal/fuzzy"
	"github.com/roach88/fuzzint/internal/interval"
)

// opFunc applies an operation to already-resolved operands.
// Operand count has been checked against arity.
type opFunc func(op string, args []Value, terms int) (Value, error)

type opSpec struct {
	arity int
	usage string
	fn    opFunc
}

// ops is the operation table. Names are the public surface of the evaluator,
// the CLI and scenario files.
var ops = map[string]opSpec{
	"add": {2, "<interval|fuzzy> <interval|fuzzy>", binary(interval.Interval.Add, fuzzy.Set.Add)},
	"sub": {2, "<interval|fuzzy> <interval|fuzzy>", binary(interval.Interval.Sub, fuzzy.Set.Sub)},
	"mul": {2, "<interval|fuzzy> <interval|fuzzy>", binary(interval.Interval.Mul, fuzzy.Set.Mul)},
	"div": {2, "<interval|fuzzy> <interval|fuzzy>", binary(interval.Interval.Div, fuzzy.Set.Div)},

	"divs":  {2, "<interval> <scalar>", divScalar},
	"recip": {1, "<interval>", unary(interval.Interval.Reciprocal)},

	"contains":   {2, "<interval|fuzzy> <scalar>", contains},
	"intersects": {2, "<interval|fuzzy> <interval>", intersects},

	"sin": {1, "<interval>", series(interval.Interval.Sin)},
	"cos": {1, "<interval>", series(interval.Interval.Cos)},
	"exp": {1, "<interval>", series(interval.Interval.Exp)},

	"sin-direct": {1, "<interval>", unary(interval.Interval.SinDirect)},
	"cos-direct": {1, "<interval>", unary(interval.Interval.CosDirect)},
	"exp-direct": {1, "<interval>", unary(interval.Interval.ExpDirect)},

	"width":    {1, "<interval>", width},
	"midpoint": {1, "<interval>", midpoint},

	"membership": {2, "<fuzzy> <scalar>", membership},
	"alpha-cut":  {2, "<fuzzy> <scalar>", alphaCut},
}

// Ops returns the operation names in sorted order.
func Ops() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Usage returns the operand signature of op, or "" for an unknown op.
func Usage(op string) string {
	return ops[op].usage
}

func binary(
	ivFn func(interval.Interval, interval.Interval) (interval.Interval, error),
	fzFn func(fuzzy.Set, fuzzy.Set) (fuzzy.Set, error),
) opFunc {
	return func(op string, args []Value, _ int) (Value, error) {
		a, b := args[0], args[1]
		switch {
		case a.Kind == KindInterval && b.Kind == KindInterval:
			r, err := ivFn(a.Interval, b.Interval)
			if err != nil {
				return Value{}, err
			}
			return IntervalValue(r), nil
		case a.Kind == KindFuzzy && b.Kind == KindFuzzy:
			r, err := fzFn(a.Fuzzy, b.Fuzzy)
			if err != nil {
				return Value{}, err
			}
			return FuzzyValue(r), nil
		case a.Kind != KindInterval && a.Kind != KindFuzzy:
			return Value{}, newKindError(op, 0, "an interval or fuzzy set", a)
		default:
			return Value{}, newKindError(op, 1, fmt.Sprintf("the same kind as operand 1 (%s)", a.Kind), b)
		}
	}
}

func unary(fn func(interval.Interval) (interval.Interval, error)) opFunc {
	return func(op string, args []Value, _ int) (Value, error) {
		if args[0].Kind != KindInterval {
			return Value{}, newKindError(op, 0, "an interval", args[0])
		}
		r, err := fn(args[0].Interval)
		if err != nil {
			return Value{}, err
		}
		return IntervalValue(r), nil
	}
}

func series(fn func(interval.Interval, int) (interval.Interval, error)) opFunc {
	return func(op string, args []Value, terms int) (Value, error) {
		if args[0].Kind != KindInterval {
			return Value{}, newKindError(op, 0, "an interval", args[0])
		}
		r, err := fn(args[0].Interval, terms)
		if err != nil {
			return Value{}, err
		}
		return IntervalValue(r), nil
	}
}

func divScalar(op string, args []Value, _ int) (Value, error) {
	if args[0].Kind != KindInterval {
		return Value{}, newKindError(op, 0, "an interval", args[0])
	}
	if args[1].Kind != KindScalar {
		return Value{}, newKindError(op, 1, "a scalar", args[1])
	}
	r, err := args[0].Interval.DivScalar(args[1].Scalar)
	if err != nil {
		return Value{}, err
	}
	return IntervalValue(r), nil
}

func contains(op string, args []Value, _ int) (Value, error) {
	if args[1].Kind != KindScalar {
		return Value{}, newKindError(op, 1, "a scalar", args[1])
	}
	switch args[0].Kind {
	case KindInterval:
		return BoolValue(args[0].Interval.Contains(args[1].Scalar)), nil
	case KindFuzzy:
		return BoolValue(args[0].Fuzzy.Contains(args[1].Scalar)), nil
	default:
		return Value{}, newKindError(op, 0, "an interval or fuzzy set", args[0])
	}
}

func intersects(op string, args []Value, _ int) (Value, error) {
	if args[1].Kind != KindInterval {
		return Value{}, newKindError(op, 1, "an interval", args[1])
	}
	switch args[0].Kind {
	case KindInterval:
		return BoolValue(args[0].Interval.Intersects(args[1].Interval)), nil
	case KindFuzzy:
		return BoolValue(args[0].Fuzzy.Intersects(args[1].Interval)), nil
	default:
		return Value{}, newKindError(op, 0, "an interval or fuzzy set", args[0])
	}
}

func width(op string, args []Value, _ int) (Value, error) {
	if args[0].Kind != KindInterval {
		return Value{}, newKindError(op, 0, "an interval", args[0])
	}
	w, err := args[0].Interval.Width()
	if err != nil {
		return Value{}, err
	}
	return ScalarValue(w), nil
}

func midpoint(op string, args []Value, _ int) (Value, error) {
	if args[0].Kind != KindInterval {
		return Value{}, newKindError(op, 0, "an interval", args[0])
	}
	m, err := args[0].Interval.Midpoint()
	if err != nil {
		return Value{}, err
	}
	return ScalarValue(m), nil
}

func membership(op string, args []Value, _ int) (Value, error) {
	if args[0].Kind != KindFuzzy {
		return Value{}, newKindError(op, 0, "a fuzzy set", args[0])
	}
	if args[1].Kind != KindScalar {
		return Value{}, newKindError(op, 1, "a scalar", args[1])
	}
	g, err := args[0].Fuzzy.Membership(args[1].Scalar)
	if err != nil {
		return Value{}, err
	}
	return ScalarValue(g), nil
}

func alphaCut(op string, args []Value, _ int) (Value, error) {
	if args[0].Kind != KindFuzzy {
		return Value{}, newKindError(op, 0, "a fuzzy set", args[0])
	}
	if args[1].Kind != KindScalar {
		return Value{}, newKindError(op, 1, "a scalar", args[1])
	}
	r, err := args[0].Fuzzy.AlphaCut(args[1].Scalar)
	if err != nil {
		return Value{}, err
	}
	return IntervalValue(r), nil
}
