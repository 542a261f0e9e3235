package interval

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ArithmeticError represents a failure detected by an interval constructor or
// operation. Errors are returned at the operation that detects them and are
// never clamped or coerced into a result.
type ArithmeticError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the operation that failed ("new", "div", "sin", ...).
	Op string

	// Message is a human-readable description.
	Message string

	// Operands holds the textual form of the inputs, for diagnostics.
	Operands []string

	// Err is the underlying cause, when there is one (apd conditions, parse errors).
	Err error
}

// ErrorCode categorizes arithmetic errors.
type ErrorCode string

const (
	// ErrCodeInvalidRange indicates an interval with start above end.
	ErrCodeInvalidRange ErrorCode = "INVALID_RANGE"

	// ErrCodeDivisionUndefined indicates division by an interval spanning zero.
	ErrCodeDivisionUndefined ErrorCode = "DIVISION_UNDEFINED"

	// ErrCodeDivisionByZero indicates division by the scalar zero.
	ErrCodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"

	// ErrCodeInvalidTerms indicates a series requested with fewer than one term.
	ErrCodeInvalidTerms ErrorCode = "INVALID_TERMS"

	// ErrCodeSyntax indicates a literal that could not be parsed.
	ErrCodeSyntax ErrorCode = "SYNTAX"

	// ErrCodePrecision indicates apd trapped a condition (overflow, underflow).
	ErrCodePrecision ErrorCode = "PRECISION"

	// ErrCodeNonFinite indicates a NaN or infinite bound or operand.
	ErrCodeNonFinite ErrorCode = "NON_FINITE"
)

// Error implements the error interface.
func (e *ArithmeticError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	if len(e.Operands) > 0 {
		fmt.Fprintf(&b, " (%s %s)", e.Op, strings.Join(e.Operands, " "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *ArithmeticError) Unwrap() error {
	return e.Err
}

// Code returns the ErrorCode carried by err, or "" when err is not an
// ArithmeticError. Uses errors.As to handle wrapped errors.
func Code(err error) ErrorCode {
	var ae *ArithmeticError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsInvalidRange returns true if err reports an inverted interval.
func IsInvalidRange(err error) bool {
	return Code(err) == ErrCodeInvalidRange
}

// IsDivisionUndefined returns true if err reports division by a zero-spanning interval.
func IsDivisionUndefined(err error) bool {
	return Code(err) == ErrCodeDivisionUndefined
}

// IsDivisionByZero returns true if err reports scalar division by zero.
func IsDivisionByZero(err error) bool {
	return Code(err) == ErrCodeDivisionByZero
}

// IsNonFinite returns true if err reports a NaN or infinite value.
func IsNonFinite(err error) bool {
	return Code(err) == ErrCodeNonFinite
}

// CheckFinite fails with ErrCodeNonFinite, attributed to op, when any of ds
// is NaN or infinite.
func CheckFinite(op string, ds ...*apd.Decimal) error {
	for _, d := range ds {
		if d.Form != apd.Finite {
			operands := make([]string, len(ds))
			for i, o := range ds {
				operands[i] = o.String()
			}
			return &ArithmeticError{
				Code:     ErrCodeNonFinite,
				Op:       op,
				Message:  "values must be finite",
				Operands: operands,
			}
		}
	}
	return nil
}

func newInvalidRange(start, end string) *ArithmeticError {
	return &ArithmeticError{
		Code:     ErrCodeInvalidRange,
		Op:       "new",
		Message:  "start must be less than or equal to end",
		Operands: []string{start, end},
	}
}

func newDivisionUndefined(op string, divisor Interval) *ArithmeticError {
	return &ArithmeticError{
		Code:     ErrCodeDivisionUndefined,
		Op:       op,
		Message:  "division by an interval that spans zero is undefined",
		Operands: []string{divisor.String()},
	}
}

func newInvalidTerms(op string, terms int) *ArithmeticError {
	return &ArithmeticError{
		Code:     ErrCodeInvalidTerms,
		Op:       op,
		Message:  fmt.Sprintf("series needs at least one term, got %d", terms),
		Operands: []string{fmt.Sprintf("%d", terms)},
	}
}

func newPrecisionError(op string, err error) *ArithmeticError {
	return &ArithmeticError{
		Code:    ErrCodePrecision,
		Op:      op,
		Message: "decimal condition trapped",
		Err:     err,
	}
}
