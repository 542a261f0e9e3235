package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fuzzint/internal/engine"
)

// EvalResult is the payload of a successful evaluation.
type EvalResult struct {
	ID     string   `json:"id"`
	Seq    int64    `json:"seq"`
	Op     string   `json:"op"`
	Args   []string `json:"args"`
	Terms  int      `json:"terms,omitempty"`
	Kind   string   `json:"kind"`
	Result string   `json:"result"`
}

// Text implements Texter.
func (r EvalResult) Text() string {
	return r.Result
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <op> <operand>...",
		Short: "Evaluate one operation",
		Long: `Evaluate one operation and print its result.

Operands are interval literals "[lo, hi]", fuzzy set literals
"{value, left, right}", decimals, or @name references to the catalog.
Run "fuzzint ops" for the operation table. Put "--" before the operation
when a scalar operand is negative.

With a catalog (--db or FUZZINT_DB) every evaluation is logged.

Exit codes:
  0 - Evaluated
  1 - The operation failed (division by a zero-spanning interval, etc.)
  2 - The request was malformed (unknown op, wrong operands, etc.)

Examples:
  fuzzint eval add "[1, 2]" "[3, 4]"
  fuzzint eval membership "{10, 2, 3}" 11.5
  fuzzint eval sin "[0, 0.5]" --terms 12
  fuzzint eval -- divs "[1, 2]" -4
  fuzzint eval mul @load "{1, 0.1, 0.1}" --db catalog.db`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, cmd, args[0], args[1:])
		},
	}
}

func runEval(opts *RootOptions, cmd *cobra.Command, op string, operands []string) error {
	ctx := cmd.Context()
	st, err := opts.openStore(false)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	eng, err := opts.newEngine(ctx, st)
	if err != nil {
		return err
	}

	out, err := eng.Evaluate(ctx, engine.Request{Op: op, Args: operands})
	f := opts.formatter(cmd)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return WrapExitError(ExitFailure, "evaluation cancelled", err)
	}
	if out.Err != nil {
		msg := out.Err.Error()
		if engine.IsUnknownOp(out.Err) {
			msg += "; run 'fuzzint ops' to list operations"
		}
		if ferr := f.Error(out.ErrorCode(), msg, nil); ferr != nil {
			return ferr
		}
		var re *engine.RequestError
		if errors.As(out.Err, &re) {
			return WrapExitError(ExitCommandError, fmt.Sprintf("%s rejected", op), out.Err)
		}
		return WrapExitError(ExitFailure, fmt.Sprintf("%s failed", op), out.Err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "evaluation not recorded", err)
	}

	res := EvalResult{
		ID:     out.ID,
		Seq:    out.Seq,
		Op:     out.Op,
		Args:   out.Args,
		Kind:   string(out.Result.Kind),
		Result: out.Result.String(),
	}
	switch op {
	case "sin", "cos", "exp":
		res.Terms = out.Terms
	}
	return f.Success(res)
}

// OpInfo describes one operation.
type OpInfo struct {
	Op    string `json:"op"`
	Usage string `json:"usage"`
}

// OpTable lists the operations.
type OpTable []OpInfo

// Text implements Texter.
func (t OpTable) Text() string {
	width := 0
	for _, o := range t {
		width = max(width, len(o.Op))
	}
	lines := make([]string, len(t))
	for i, o := range t {
		lines[i] = fmt.Sprintf("%-*s  %s", width, o.Op, o.Usage)
	}
	return strings.Join(lines, "\n")
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the operations eval accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := engine.Ops()
			table := make(OpTable, len(names))
			for i, name := range names {
				table[i] = OpInfo{Op: name, Usage: engine.Usage(name)}
			}
			return rootOpts.formatter(cmd).Success(table)
		},
	}
}
