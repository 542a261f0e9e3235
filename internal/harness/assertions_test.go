package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fuzzint/internal/store"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, ID: "eval-0001", Op: "add", Args: []string{"[1, 2]", "[3, 4]"}, Result: "[4, 6]"},
		{Seq: 2, ID: "eval-0002", Op: "mul", Args: []string{"[1, 2]", "[3, 4]"}, Result: "[3, 8]"},
		{Seq: 3, ID: "eval-0003", Op: "add", Args: []string{"[0, 0]", "[1, 1]"}, Result: "[1, 1]"},
		{Seq: 4, ID: "eval-0004", Op: "div", Args: []string{"[1, 2]", "[0, 1]"}, Error: "DIVISION_UNDEFINED"},
	}
}

func TestAssertTraceContains(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceContains(trace, Assertion{Op: "mul"}))
	assert.NoError(t, assertTraceContains(trace, Assertion{Op: "add", Args: []string{"[0, 0]", "[1, 1]"}}))

	err := assertTraceContains(trace, Assertion{Op: "add", Args: []string{"[9, 9]", "[1, 1]"}})
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertTraceContains, ae.Type)
	assert.Contains(t, err.Error(), "with args [[9, 9] [1, 1]]")
	assert.Contains(t, err.Error(), "[4] div [1, 2] [0, 1] -> DIVISION_UNDEFINED")

	assert.Error(t, assertTraceContains(trace, Assertion{Op: "sin"}))
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{"add", "mul", "div"}}))
	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{"add", "div"}}))

	err := assertTraceOrder(trace, Assertion{Ops: []string{"mul", "add"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mul (pos 2) should be before add (pos 1)")

	err = assertTraceOrder(trace, Assertion{Ops: []string{"add", "cos"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing op: cos")
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Op: "add", Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: "exp", Count: 0}))

	err := assertTraceCount(trace, Assertion{Op: "add", Count: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 occurrences of add")
	assert.Contains(t, err.Error(), "Actual: 2 occurrences")
}

func TestAssertHistoryCount(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	for _, ev := range []store.Evaluation{
		{ID: "a", Seq: 1, Op: "add", Operands: []string{"[1, 2]", "[3, 4]"}, Result: "[4, 6]"},
		{ID: "b", Seq: 2, Op: "add", Operands: []string{"[1, 2]", "[3, 4]"}, Result: "[4, 6]"},
		{ID: "c", Seq: 3, Op: "div", Operands: []string{"[1, 2]", "[0, 1]"}, ErrorCode: "DIVISION_UNDEFINED"},
	} {
		require.NoError(t, st.RecordEvaluation(ctx, ev))
	}

	assert.NoError(t, assertHistoryCount(ctx, st, Assertion{Op: "add", Count: 2}))
	assert.NoError(t, assertHistoryCount(ctx, st, Assertion{Op: "div", Count: 1}))

	err = assertHistoryCount(ctx, st, Assertion{Op: "mul", Count: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0 logged evaluations")
}

func TestEvaluateAssertions(t *testing.T) {
	result := &Result{Pass: true, Trace: sampleTrace()}

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertTraceCount, Op: "add", Count: 2},
		{Type: AssertTraceOrder, Ops: []string{"div", "add"}},
		{Type: AssertHistoryCount, Op: "add", Count: 2},
		{Type: "final_state"},
	}, nil)

	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "Assertion failed: trace_order")
	assert.Equal(t, "assertion[2]: history_count requires database context", errs[1])
	assert.Equal(t, `assertion[3]: unknown assertion type "final_state"`, errs[2])
}
