package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/fuzzint/internal/config"
	"github.com/roach88/fuzzint/internal/engine"
	"github.com/roach88/fuzzint/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DB         string
	Terms      int

	// Config is resolved before any subcommand runs: file, then environment,
	// then the flags above when set explicitly.
	Config config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the fuzzint CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fuzzint",
		Short: "fuzzint - interval and fuzzy-number calculator",
		Long: `Evaluate interval arithmetic, Taylor-series functions and triangular
fuzzy numbers over exact decimals, keep a catalog of named quantities, and
run scenario files as conformance tests.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "CUE config file")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "SQLite catalog path")
	cmd.PersistentFlags().IntVar(&opts.Terms, "terms", engine.DefaultTerms, "Taylor series length for sin, cos and exp")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewOpsCommand(opts))
	cmd.AddCommand(NewDefineCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolve layers explicit flags over the loaded config and installs the
// stderr logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		if !isValidFormat(o.Format) {
			return NewExitError(ExitCommandError,
				fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
		}
		cfg.Format = o.Format
	}
	if flags.Changed("db") {
		cfg.DB = o.DB
	}
	if flags.Changed("terms") {
		cfg.Terms = o.Terms
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	o.Config = cfg
	o.Format = cfg.Format
	o.DB = cfg.DB
	o.Terms = cfg.Terms
	o.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	o.Logger.Debug("configuration resolved",
		"config", o.ConfigPath,
		"format", cfg.Format,
		"db", cfg.DB,
		"terms", cfg.Terms,
	)
	return nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// openStore opens the configured catalog. Commands that cannot work without
// one call it with required set.
func (o *RootOptions) openStore(required bool) (*store.Store, error) {
	if o.DB == "" {
		if required {
			return nil, NewExitError(ExitCommandError, "no catalog configured: set --db or FUZZINT_DB")
		}
		return nil, nil
	}
	st, err := store.Open(o.DB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open catalog", err)
	}
	return st, nil
}

// newEngine builds an engine over st, which may be nil. With a catalog the
// clock resumes after the last logged evaluation.
func (o *RootOptions) newEngine(ctx context.Context, st *store.Store) (*engine.Engine, error) {
	opts := []engine.Option{
		engine.WithLogger(o.Logger),
		engine.WithTerms(o.Terms),
	}
	if st != nil {
		last, err := st.LastSeq(ctx)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read evaluation log", err)
		}
		opts = append(opts,
			engine.WithClock(engine.NewClockAt(last)),
			engine.WithResolver(st),
			engine.WithRecorder(st),
		)
	}
	return engine.New(opts...), nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
