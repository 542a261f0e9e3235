package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/fuzzint/internal/engine"
	"github.com/roach88/fuzzint/internal/store"
	"github.com/roach88/fuzzint/internal/testutil"
)

// Harness is the test execution engine.
// It runs scenarios with a deterministic clock and sequential ids.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Execution flow:
//  1. Create fresh in-memory database
//  2. Define setup quantities
//  3. Evaluate steps with expect validation
//  4. Evaluate assertions against the trace and evaluation log
//
// A failed expectation or assertion marks the result as failed; the returned
// error is reserved for scenarios that could not be executed at all.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	terms := scenario.Terms
	if terms == 0 {
		terms = engine.DefaultTerms
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := &Harness{
		store: st,
		engine: engine.New(
			engine.WithClock(engine.NewClock()),
			engine.WithIDGenerator(testutil.NewSequentialIDs("eval")),
			engine.WithResolver(st),
			engine.WithRecorder(st),
			engine.WithLogger(logger),
			engine.WithTerms(terms),
		),
		logger: logger,
	}

	ctx := context.Background()
	result := NewResult()

	if err := h.executeSetup(ctx, scenario.Setup); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	actx := &AssertionContext{
		Store: st,
		Ctx:   ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSetup stores every definition in the catalog.
func (h *Harness) executeSetup(ctx context.Context, setup []Definition) error {
	for i, def := range setup {
		v, err := engine.ParseLiteral(def.Literal)
		if err != nil {
			return fmt.Errorf("setup[%d] %s: %w", i, def.Name, err)
		}
		q, err := v.Quantity(def.Name)
		if err != nil {
			return fmt.Errorf("setup[%d] %s: %w", i, def.Name, err)
		}
		if _, err := h.store.Define(ctx, q); err != nil {
			return fmt.Errorf("setup[%d] %s: %w", i, def.Name, err)
		}
		h.logger.Debug("defined", "name", def.Name, "literal", q.Literal)
	}
	return nil
}

// executeSteps evaluates each step and checks its expectation.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		out, err := h.engine.Evaluate(ctx, engine.Request{
			Op:    step.Op,
			Args:  step.Args,
			Terms: step.Terms,
		})
		if err != nil && err != out.Err {
			return fmt.Errorf("steps[%d] %s: %w", i, step.Op, err)
		}

		result.AddTrace(out)
		if msg := checkExpect(step, out); msg != "" {
			result.AddError(fmt.Sprintf("steps[%d] %s: %s", i, step.Op, msg))
		}
	}
	return nil
}

// checkExpect returns a description of the mismatch, or "" if out satisfies
// the step. Expected results are compared in normalized literal form, so
// "[1.50, 2]" matches "[1.5, 2]".
func checkExpect(step Step, out engine.Outcome) string {
	switch {
	case step.Expect == nil:
		if out.Err != nil {
			return fmt.Sprintf("unexpected error: %v", out.Err)
		}
	case step.Expect.Error != "":
		if out.Err == nil {
			return fmt.Sprintf("expected error %s, got result %s", step.Expect.Error, out.Result)
		}
		if code := out.ErrorCode(); code != step.Expect.Error {
			return fmt.Sprintf("expected error %s, got %s", step.Expect.Error, code)
		}
	default:
		if out.Err != nil {
			return fmt.Sprintf("expected result %s, got error %s", step.Expect.Result, out.ErrorCode())
		}
		want := normalize(step.Expect.Result)
		if got := out.Result.String(); got != want {
			return fmt.Sprintf("expected result %s, got %s", want, got)
		}
	}
	return ""
}

func normalize(literal string) string {
	v, err := engine.ParseLiteral(literal)
	if err != nil {
		return literal
	}
	return v.String()
}
