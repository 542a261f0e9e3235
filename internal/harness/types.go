package harness

import (
	"github.com/roach88/fuzzint/internal/engine"
)

// TraceEvent records one evaluation. Exactly one of Result and Error is set.
type TraceEvent struct {
	Seq    int64    `json:"seq"`
	ID     string   `json:"id"`
	Op     string   `json:"op"`
	Args   []string `json:"args"`
	Terms  int      `json:"terms,omitempty"`
	Result string   `json:"result,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass is true if every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains all evaluations in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an engine outcome to the trace. Terms is kept only for
// the series operations, where it affects the result.
func (r *Result) AddTrace(out engine.Outcome) {
	ev := TraceEvent{
		Seq:   out.Seq,
		ID:    out.ID,
		Op:    out.Op,
		Args:  out.Args,
		Error: out.ErrorCode(),
	}
	if out.Err == nil {
		ev.Result = out.Result.String()
	}
	switch out.Op {
	case "sin", "cos", "exp":
		ev.Terms = out.Terms
	}
	r.Trace = append(r.Trace, ev)
}
