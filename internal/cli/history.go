package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fuzzint/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	Op    string
}

// HistoryEntry is one logged evaluation.
type HistoryEntry struct {
	Seq       int64    `json:"seq"`
	ID        string   `json:"id"`
	Op        string   `json:"op"`
	Args      []string `json:"args"`
	Terms     int      `json:"terms,omitempty"`
	Result    string   `json:"result,omitempty"`
	ErrorCode string   `json:"error_code,omitempty"`
}

// History renders as one line per evaluation, oldest first.
type History []HistoryEntry

// Text implements Texter.
func (h History) Text() string {
	if len(h) == 0 {
		return "No evaluations logged."
	}
	lines := make([]string, len(h))
	for i, e := range h {
		outcome := e.Result
		if e.ErrorCode != "" {
			outcome = "error " + e.ErrorCode
		}
		op := e.Op
		if e.Terms != 0 {
			op = fmt.Sprintf("%s(terms=%d)", e.Op, e.Terms)
		}
		lines[i] = fmt.Sprintf("[%d] %s %s -> %s", e.Seq, op, strings.Join(e.Args, " "), outcome)
	}
	return strings.Join(lines, "\n")
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the evaluation log",
		Long: `Show logged evaluations, oldest first.

Examples:
  fuzzint history --db catalog.db
  fuzzint history --db catalog.db --limit 10 --op div`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show only the most recent N evaluations (0 = all)")
	cmd.Flags().StringVar(&opts.Op, "op", "", "show only evaluations of one operation")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, "--limit must be non-negative")
	}

	st, err := opts.openStore(true)
	if err != nil {
		return err
	}
	defer st.Close()

	evals, err := st.Evaluations(cmd.Context(), store.HistoryFilter{
		Limit: opts.Limit,
		Op:    opts.Op,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read evaluation log", err)
	}

	h := make(History, len(evals))
	for i, e := range evals {
		h[i] = HistoryEntry{
			Seq:       e.Seq,
			ID:        e.ID,
			Op:        e.Op,
			Args:      e.Operands,
			Terms:     e.Terms,
			Result:    e.Result,
			ErrorCode: e.ErrorCode,
		}
	}
	return opts.formatter(cmd).Success(h)
}
