package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/fuzzint/internal/fuzzy"
	"github.com/roach88/fuzzint/internal/interval"
)

// RequestError reports a request the engine could not dispatch: an unknown
// operation, the wrong number or kinds of operands, or an unresolvable
// reference. Failures inside an operation are returned as the interval or
// fuzzy package reports them.
type RequestError struct {
	// Code identifies the error category.
	Code RequestErrorCode

	// Message is a human-readable description.
	Message string

	// Op is the requested operation.
	Op string

	// Operand is the offending operand literal or reference, when there is one.
	Operand string

	// Err is the underlying cause (parse or lookup failure).
	Err error
}

// RequestErrorCode categorizes request errors.
type RequestErrorCode string

const (
	// ErrCodeUnknownOp indicates an operation name not in the table.
	ErrCodeUnknownOp RequestErrorCode = "UNKNOWN_OP"

	// ErrCodeArity indicates the wrong number of operands.
	ErrCodeArity RequestErrorCode = "ARITY"

	// ErrCodeOperandKind indicates an operand of the wrong kind.
	ErrCodeOperandKind RequestErrorCode = "OPERAND_KIND"

	// ErrCodeUnresolved indicates an @name reference that could not be resolved.
	ErrCodeUnresolved RequestErrorCode = "UNRESOLVED"

	// ErrCodeSyntax indicates a scalar literal that could not be parsed.
	ErrCodeSyntax RequestErrorCode = "SYNTAX"
)

// Error implements the error interface.
func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Op != "" && e.Operand != "" {
		msg = fmt.Sprintf("%s (op=%s, operand=%s)", msg, e.Op, e.Operand)
	} else if e.Op != "" {
		msg = fmt.Sprintf("%s (op=%s)", msg, e.Op)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsUnknownOp returns true if err reports an unknown operation.
func IsUnknownOp(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Code == ErrCodeUnknownOp
}

// IsOperandKind returns true if err reports an operand of the wrong kind.
func IsOperandKind(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Code == ErrCodeOperandKind
}

// ErrorCode returns the stable code for any error produced during evaluation:
// a RequestError, an interval.ArithmeticError or a fuzzy.Error. Anything else
// maps to "INTERNAL". Returns "" for a nil error.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) {
		return string(re.Code)
	}
	if code := interval.Code(err); code != "" {
		return string(code)
	}
	if code := fuzzy.Code(err); code != "" {
		return string(code)
	}
	return "INTERNAL"
}

func newKindError(op string, pos int, want string, got Value) *RequestError {
	return &RequestError{
		Code:    ErrCodeOperandKind,
		Message: fmt.Sprintf("operand %d must be %s, got %s", pos+1, want, got.Kind),
		Op:      op,
		Operand: got.String(),
	}
}
