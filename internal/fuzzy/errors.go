package fuzzy

import (
	"errors"
	"fmt"
	"strings"
)

// Error reports a fuzzy set that violates the triangular shape, or a literal
// that cannot be read. Interval failures (INVALID_RANGE, DIVISION_UNDEFINED)
// are returned unchanged as *interval.ArithmeticError.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string

	// Value and Range describe the offending center and interval, when known.
	Value string
	Range string

	Err error
}

// ErrorCode categorizes fuzzy set errors.
type ErrorCode string

const (
	// ErrCodeCenterOutside indicates a center outside the set's interval.
	ErrCodeCenterOutside ErrorCode = "CENTER_OUTSIDE"

	// ErrCodeNegativeDeviation indicates a negative left or right deviation.
	ErrCodeNegativeDeviation ErrorCode = "NEGATIVE_DEVIATION"

	// ErrCodeInvalidAlpha indicates an alpha level outside [0, 1].
	ErrCodeInvalidAlpha ErrorCode = "INVALID_ALPHA"

	// ErrCodeSyntax indicates a literal that could not be parsed.
	ErrCodeSyntax ErrorCode = "SYNTAX"
)

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	switch {
	case e.Value != "" && e.Range != "":
		fmt.Fprintf(&b, " (%s value=%s interval=%s)", e.Op, e.Value, e.Range)
	case e.Value != "":
		fmt.Fprintf(&b, " (%s %s)", e.Op, e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the ErrorCode carried by err, or "" when err is not a fuzzy
// Error.
func Code(err error) ErrorCode {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// IsCenterOutside returns true if err reports a center outside the interval.
func IsCenterOutside(err error) bool {
	return Code(err) == ErrCodeCenterOutside
}

// IsNegativeDeviation returns true if err reports a negative deviation.
func IsNegativeDeviation(err error) bool {
	return Code(err) == ErrCodeNegativeDeviation
}

func syntaxError(literal string, err error) *Error {
	return &Error{
		Code:    ErrCodeSyntax,
		Op:      "parse",
		Message: "malformed literal",
		Value:   literal,
		Err:     err,
	}
}
