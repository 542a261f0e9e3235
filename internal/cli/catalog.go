package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fuzzint/internal/decimal"
	"github.com/roach88/fuzzint/internal/engine"
	"github.com/roach88/fuzzint/internal/store"
)

// QuantityView is the CLI rendering of a catalog entry.
type QuantityView struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Literal string `json:"literal"`
	Lower   string `json:"lower"`
	Upper   string `json:"upper"`
	Seq     int64  `json:"seq"`
}

// Text implements Texter.
func (q QuantityView) Text() string {
	return fmt.Sprintf("%s = %s", q.Name, q.Literal)
}

func viewOf(q store.Quantity) QuantityView {
	return QuantityView{
		Name:    q.Name,
		Kind:    q.Kind,
		Literal: q.Literal,
		Lower:   decimal.Format(&q.Lower),
		Upper:   decimal.Format(&q.Upper),
		Seq:     q.CreatedSeq,
	}
}

// QuantityList renders as one aligned row per quantity.
type QuantityList []QuantityView

// Text implements Texter.
func (l QuantityList) Text() string {
	if len(l) == 0 {
		return "No quantities defined."
	}
	nameW, kindW := 0, 0
	for _, q := range l {
		nameW = max(nameW, len(q.Name))
		kindW = max(kindW, len(q.Kind))
	}
	lines := make([]string, len(l))
	for i, q := range l {
		lines[i] = fmt.Sprintf("%-*s  %-*s  %s  [%s, %s]",
			nameW, q.Name, kindW, q.Kind, q.Literal, q.Lower, q.Upper)
	}
	return strings.Join(lines, "\n")
}

// NewDefineCommand creates the define command.
func NewDefineCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "define <name> <literal>",
		Short: "Store a named interval, fuzzy set or decimal",
		Long: `Store a literal in the catalog under a name, replacing any previous
definition. Stored quantities are referenced as @name in eval and scenarios.

Examples:
  fuzzint define load "{10, 2, 3}" --db catalog.db
  fuzzint define span "[0.5, 1.25]" --db catalog.db`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefine(rootOpts, cmd, args[0], args[1])
		},
	}
}

func runDefine(opts *RootOptions, cmd *cobra.Command, name, literal string) error {
	f := opts.formatter(cmd)
	if name == "" || strings.ContainsAny(name, "@ \t") {
		_ = f.Error("INVALID_NAME", fmt.Sprintf("invalid name %q", name), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid name %q", name))
	}

	v, err := engine.ParseLiteral(literal)
	if err != nil {
		_ = f.Error(engine.ErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid literal", err)
	}
	q, err := v.Quantity(name)
	if err != nil {
		_ = f.Error(engine.ErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid literal", err)
	}

	st, err := opts.openStore(true)
	if err != nil {
		return err
	}
	defer st.Close()

	seq, err := st.Define(cmd.Context(), q)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to define quantity", err)
	}
	q.CreatedSeq = seq
	opts.Logger.Debug("defined", "name", name, "kind", q.Kind, "seq", seq)
	return f.Success(viewOf(q))
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := rootOpts.openStore(true)
			if err != nil {
				return err
			}
			defer st.Close()

			f := rootOpts.formatter(cmd)
			q, err := st.Lookup(cmd.Context(), args[0])
			if err != nil {
				return notFound(f, args[0], err)
			}
			return f.Success(viewOf(q))
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := rootOpts.openStore(true)
			if err != nil {
				return err
			}
			defer st.Close()

			qs, err := st.List(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list catalog", err)
			}
			list := make(QuantityList, len(qs))
			for i, q := range qs {
				list[i] = viewOf(q)
			}
			return rootOpts.formatter(cmd).Success(list)
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := rootOpts.openStore(true)
			if err != nil {
				return err
			}
			defer st.Close()

			f := rootOpts.formatter(cmd)
			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return notFound(f, args[0], err)
			}
			return f.Success(fmt.Sprintf("deleted %s", args[0]))
		},
	}
}

func notFound(f *OutputFormatter, name string, err error) error {
	if !errors.Is(err, store.ErrNotFound) {
		return WrapExitError(ExitCommandError, "catalog lookup failed", err)
	}
	msg := fmt.Sprintf("no quantity named %q", name)
	if ferr := f.Error("NOT_FOUND", msg, nil); ferr != nil {
		return ferr
	}
	return NewExitError(ExitFailure, msg)
}
