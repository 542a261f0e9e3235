package interval

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/fuzzint/internal/decimal"
)

// Interval is the closed range [start, end] with start <= end.
//
// Interval is an immutable value: bounds are copied in at construction and
// copied out by the accessors, and every operation returns a new Interval.
// A single Interval may be read from many goroutines without locking.
// The zero value is the degenerate interval [0, 0].
type Interval struct {
	start apd.Decimal
	end   apd.Decimal
}

// New returns [start, end]. It fails with ErrCodeNonFinite when either bound
// is NaN or infinite, and with ErrCodeInvalidRange when start > end; inverted
// bounds are never swapped.
func New(start, end *apd.Decimal) (Interval, error) {
	if err := CheckFinite("new", start, end); err != nil {
		return Interval{}, err
	}
	if start.Cmp(end) > 0 {
		return Interval{}, newInvalidRange(decimal.Format(start), decimal.Format(end))
	}
	var iv Interval
	iv.start.Set(start)
	iv.end.Set(end)
	return iv, nil
}

// MustNew is New for bounds known to be ordered. Panics otherwise.
func MustNew(start, end *apd.Decimal) Interval {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

// Point returns the degenerate interval [v, v]. It fails with
// ErrCodeNonFinite when v is NaN or infinite.
func Point(v *apd.Decimal) (Interval, error) {
	return New(v, v)
}

// FromInt64 returns [start, end] for integer bounds.
func FromInt64(start, end int64) (Interval, error) {
	return New(decimal.FromInt64(start), decimal.FromInt64(end))
}

// FromStrings parses both bounds and returns [start, end].
func FromStrings(start, end string) (Interval, error) {
	s, err := decimal.Parse(start)
	if err != nil {
		return Interval{}, syntaxError(start, err)
	}
	e, err := decimal.Parse(end)
	if err != nil {
		return Interval{}, syntaxError(end, err)
	}
	return New(s, e)
}

// Parse reads the textual form produced by String: "[start, end]".
// Whitespace around the bounds is optional.
func Parse(s string) (Interval, error) {
	body := strings.TrimSpace(s)
	if !strings.HasPrefix(body, "[") || !strings.HasSuffix(body, "]") {
		return Interval{}, syntaxError(s, fmt.Errorf("interval literal must be enclosed in [ ]"))
	}
	parts := strings.Split(body[1:len(body)-1], ",")
	if len(parts) != 2 {
		return Interval{}, syntaxError(s, fmt.Errorf("interval literal needs exactly two bounds"))
	}
	return FromStrings(parts[0], parts[1])
}

func syntaxError(literal string, err error) *ArithmeticError {
	return &ArithmeticError{
		Code:     ErrCodeSyntax,
		Op:       "parse",
		Message:  "malformed literal",
		Operands: []string{literal},
		Err:      err,
	}
}

// Start returns a copy of the lower bound.
func (iv Interval) Start() *apd.Decimal {
	return decimal.Clone(&iv.start)
}

// End returns a copy of the upper bound.
func (iv Interval) End() *apd.Decimal {
	return decimal.Clone(&iv.end)
}

// String renders the interval as "[start, end]".
func (iv Interval) String() string {
	return "[" + decimal.Format(&iv.start) + ", " + decimal.Format(&iv.end) + "]"
}

// MarshalText implements encoding.TextMarshaler using the String form.
func (iv Interval) MarshalText() ([]byte, error) {
	return []byte(iv.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (iv *Interval) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*iv = parsed
	return nil
}

// Equal reports whether both bounds compare equal numerically
// ([1, 2] equals [1.0, 2.00]).
func (iv Interval) Equal(o Interval) bool {
	return iv.start.Cmp(&o.start) == 0 && iv.end.Cmp(&o.end) == 0
}

// Contains reports whether v is finite and start <= v <= end. Both ends are
// inclusive.
func (iv Interval) Contains(v *apd.Decimal) bool {
	return v.Form == apd.Finite && v.Cmp(&iv.start) >= 0 && v.Cmp(&iv.end) <= 0
}

// Intersects reports whether the two intervals share at least one point.
// Touching at a single boundary counts.
func (iv Interval) Intersects(o Interval) bool {
	return iv.end.Cmp(&o.start) >= 0 && o.end.Cmp(&iv.start) >= 0
}

// IsDegenerate reports whether start == end.
func (iv Interval) IsDegenerate() bool {
	return iv.start.Cmp(&iv.end) == 0
}

// SpansZero reports whether start <= 0 <= end.
func (iv Interval) SpansZero() bool {
	return iv.start.Sign() <= 0 && iv.end.Sign() >= 0
}

// Width returns end - start rounded up, so the true width never exceeds it.
func (iv Interval) Width() (*apd.Decimal, error) {
	w := new(apd.Decimal)
	if _, err := decimal.Ceiling.Sub(w, &iv.end, &iv.start); err != nil {
		return nil, newPrecisionError("width", err)
	}
	return w, nil
}

// Midpoint returns (start + end) / 2 rounded to nearest.
func (iv Interval) Midpoint() (*apd.Decimal, error) {
	var sum apd.Decimal
	if _, err := decimal.Nearest.Add(&sum, &iv.start, &iv.end); err != nil {
		return nil, newPrecisionError("midpoint", err)
	}
	m := new(apd.Decimal)
	if _, err := decimal.Nearest.Quo(m, &sum, apd.New(2, 0)); err != nil {
		return nil, newPrecisionError("midpoint", err)
	}
	return m, nil
}
