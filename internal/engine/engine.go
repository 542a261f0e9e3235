package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/fuzzint/internal/store"
)

// DefaultTerms is the series length used when neither the engine nor the
// request sets one.
const DefaultTerms = 8

// Resolver looks up named quantities for @name operands.
// Implemented by *store.Store.
type Resolver interface {
	Lookup(ctx context.Context, name string) (store.Quantity, error)
}

// Recorder appends evaluations to a log.
// Implemented by *store.Store.
type Recorder interface {
	RecordEvaluation(ctx context.Context, ev store.Evaluation) error
}

// Engine evaluates named operations over literal or referenced operands.
//
// An Engine holds no per-evaluation state; Evaluate may be called from many
// goroutines as long as the configured Sequencer, IDGenerator, Resolver and
// Recorder are themselves safe for concurrent use (all production
// implementations are).
type Engine struct {
	clock    Sequencer
	ids      IDGenerator
	resolver Resolver
	recorder Recorder
	logger   *slog.Logger
	terms    int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the sequencer that stamps evaluations.
// Default: a fresh Clock starting at 0.
func WithClock(c Sequencer) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithIDGenerator sets the evaluation id source.
// Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// WithResolver enables @name operands.
func WithResolver(r Resolver) Option {
	return func(e *Engine) {
		e.resolver = r
	}
}

// WithRecorder logs every evaluation, successful or not.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithTerms sets the default series length for sin, cos and exp.
func WithTerms(n int) Option {
	return func(e *Engine) {
		e.terms = n
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:  NewClock(),
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
		terms:  DefaultTerms,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request names an operation and its operands.
type Request struct {
	// Op is a name from the operation table (see Ops).
	Op string

	// Args are operand literals or @name references.
	Args []string

	// Terms overrides the engine's series length when non-zero. A negative
	// value reaches the series and fails there with INVALID_TERMS.
	Terms int
}

// Outcome describes one evaluation. ID and Seq are always set; exactly one of
// Result and Err is meaningful.
type Outcome struct {
	ID     string
	Seq    int64
	Op     string
	Args   []string
	Terms  int
	Result Value
	Err    error
}

// ErrorCode returns the stable code of o.Err, or "" on success.
func (o Outcome) ErrorCode() string {
	return ErrorCode(o.Err)
}

// Evaluate runs one operation. The returned error equals Outcome.Err, except
// that a failure to record the evaluation is returned in its place (the
// outcome still carries the evaluation result).
func (e *Engine) Evaluate(ctx context.Context, req Request) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		ID:    e.ids.Generate(),
		Seq:   e.clock.Next(),
		Op:    req.Op,
		Args:  req.Args,
		Terms: e.termsFor(req),
	}

	e.logger.Debug("evaluating",
		"id", out.ID,
		"seq", out.Seq,
		"op", req.Op,
		"args", req.Args,
	)

	out.Result, out.Err = e.apply(ctx, req.Op, req.Args, out.Terms)
	if out.Err != nil {
		e.logger.Debug("evaluation failed",
			"id", out.ID,
			"op", req.Op,
			"code", out.ErrorCode(),
			"error", out.Err,
		)
	} else {
		e.logger.Debug("evaluated",
			"id", out.ID,
			"op", req.Op,
			"result", out.Result.String(),
		)
	}

	if e.recorder != nil {
		if err := e.recorder.RecordEvaluation(ctx, out.record()); err != nil {
			e.logger.Error("record evaluation failed",
				"id", out.ID,
				"seq", out.Seq,
				"error", err,
			)
			return out, fmt.Errorf("record evaluation %s: %w", out.ID, err)
		}
	}

	return out, out.Err
}

// Resolve parses a literal or, for "@name", looks it up through the resolver.
func (e *Engine) Resolve(ctx context.Context, operand string) (Value, error) {
	ref, isRef := strings.CutPrefix(strings.TrimSpace(operand), "@")
	if !isRef {
		return ParseLiteral(operand)
	}
	if e.resolver == nil {
		return Value{}, &RequestError{
			Code:    ErrCodeUnresolved,
			Message: "references need a catalog",
			Operand: operand,
		}
	}
	q, err := e.resolver.Lookup(ctx, ref)
	if err != nil {
		msg := "lookup failed"
		if errors.Is(err, store.ErrNotFound) {
			msg = "no quantity with that name"
		}
		return Value{}, &RequestError{
			Code:    ErrCodeUnresolved,
			Message: msg,
			Operand: operand,
			Err:     err,
		}
	}
	v, err := ParseLiteral(q.Literal)
	if err != nil {
		return Value{}, &RequestError{
			Code:    ErrCodeUnresolved,
			Message: "stored literal is unreadable",
			Operand: operand,
			Err:     err,
		}
	}
	return v, nil
}

func (e *Engine) apply(ctx context.Context, op string, args []string, terms int) (Value, error) {
	entry, ok := ops[op]
	if !ok {
		return Value{}, &RequestError{
			Code:    ErrCodeUnknownOp,
			Message: fmt.Sprintf("unknown operation %q", op),
			Op:      op,
		}
	}
	if len(args) != entry.arity {
		return Value{}, &RequestError{
			Code:    ErrCodeArity,
			Message: fmt.Sprintf("%s takes %d operand(s): %s", op, entry.arity, entry.usage),
			Op:      op,
		}
	}

	values := make([]Value, len(args))
	for i, a := range args {
		v, err := e.Resolve(ctx, a)
		if err != nil {
			var re *RequestError
			if errors.As(err, &re) && re.Op == "" {
				re.Op = op
			}
			return Value{}, err
		}
		values[i] = v
	}
	return entry.fn(op, values, terms)
}

func (e *Engine) termsFor(req Request) int {
	if req.Terms != 0 {
		return req.Terms
	}
	return e.terms
}

func (o Outcome) record() store.Evaluation {
	ev := store.Evaluation{
		ID:        o.ID,
		Seq:       o.Seq,
		Op:        o.Op,
		Operands:  o.Args,
		ErrorCode: o.ErrorCode(),
	}
	if o.Err == nil {
		ev.Result = o.Result.String()
	}
	if isSeries(o.Op) {
		ev.Terms = o.Terms
	}
	return ev
}

func isSeries(op string) bool {
	return op == "sin" || op == "cos" || op == "exp"
}
