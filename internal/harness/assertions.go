package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/fuzzint/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			outcome := event.Result
			if event.Error != "" {
				outcome = event.Error
			}
			fmt.Fprintf(&buf, "  [%d] %s %s -> %s\n",
				event.Seq, event.Op, strings.Join(event.Args, " "), outcome)
		}
	}

	return buf.String()
}

// AssertionContext gives assertions access to the scenario's store.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
}

// assertTraceContains checks if the trace contains an evaluation of the op,
// with exactly the given args when the assertion lists any.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if event.Op != assertion.Op {
			continue
		}
		if len(assertion.Args) == 0 || slices.Equal(event.Args, assertion.Args) {
			return nil
		}
	}

	expected := fmt.Sprintf("op %s", assertion.Op)
	if len(assertion.Args) > 0 {
		expected += fmt.Sprintf(" with args %v", assertion.Args)
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that ops first appear in the specified order.
// Ops don't need to be consecutive.
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if _, seen := positions[event.Op]; !seen {
			positions[event.Op] = i + 1
		}
	}

	for _, op := range assertion.Ops {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all ops present: %v", assertion.Ops),
				Actual:   fmt.Sprintf("missing op: %s", op),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Ops); i++ {
		prev := assertion.Ops[i-1]
		curr := assertion.Ops[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("ops in order: %v", assertion.Ops),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks if the op appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Op == assertion.Op {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Op),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}

// assertHistoryCount checks the evaluation log rather than the in-memory
// trace, so it also verifies that every evaluation was recorded.
func assertHistoryCount(ctx context.Context, st *store.Store, assertion Assertion) error {
	entries, err := st.Evaluations(ctx, store.HistoryFilter{Op: assertion.Op})
	if err != nil {
		return &AssertionError{
			Type:     AssertHistoryCount,
			Expected: fmt.Sprintf("query evaluation log for %s", assertion.Op),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}

	if len(entries) != assertion.Count {
		return &AssertionError{
			Type:     AssertHistoryCount,
			Expected: fmt.Sprintf("%d logged evaluations of %s", assertion.Count, assertion.Op),
			Actual:   fmt.Sprintf("%d logged evaluations", len(entries)),
		}
	}

	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides database access for history_count assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertHistoryCount:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: history_count requires database context", i)
			} else {
				err = assertHistoryCount(actx.Ctx, actx.Store, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
