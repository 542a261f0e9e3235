// Package config loads fuzzint settings.
//
// Settings are layered: the defaults of the embedded CUE schema, then an
// optional CUE file, then FUZZINT_* environment variables. The CLI applies its
// flags last and calls Validate on the result, so every layer is checked
// against the same schema.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/caarlos0/env/v11"
)

//go:embed schema.cue
var schemaSource string

// Config holds the resolved settings.
type Config struct {
	Terms    int    `json:"terms" env:"FUZZINT_TERMS"`
	Format   string `json:"format" env:"FUZZINT_FORMAT"`
	LogLevel string `json:"log_level" env:"FUZZINT_LOG_LEVEL"`
	DB       string `json:"db" env:"FUZZINT_DB"`
}

// Error reports a setting rejected by the schema, with the source position
// when CUE knows it.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the schema defaults.
func Default() Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return cfg
}

// Load reads the CUE file at path (skipped when path is empty), fills the
// remaining fields from the schema defaults and applies environment overrides.
func Load(path string) (Config, error) {
	ctx := cuecontext.New()
	v, err := schema(ctx)
	if err != nil {
		return Config{}, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		file := ctx.CompileBytes(data, cue.Filename(path))
		if err := file.Err(); err != nil {
			return Config{}, formatCUEError(err)
		}
		v = v.Unify(file)
	}

	cfg, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, &Error{Field: "env", Message: err.Error()}
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the schema.
func Validate(cfg Config) error {
	ctx := cuecontext.New()
	v, err := schema(ctx)
	if err != nil {
		return err
	}
	_, err = decode(v.Unify(ctx.Encode(cfg)))
	return err
}

// SlogLevel maps LogLevel onto a slog level. Unknown names map to warn.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func schema(ctx *cue.Context) (cue.Value, error) {
	v := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, formatCUEError(err)
	}
	return v.LookupPath(cue.ParsePath("#Config")), nil
}

func decode(v cue.Value) (Config, error) {
	if err := v.Validate(); err != nil {
		return Config{}, formatCUEError(err)
	}
	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	return cfg, nil
}

// formatCUEError keeps the first error CUE reports, with its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	field := strings.Join(first.Path(), ".")
	if field == "" {
		field = "config"
	}
	format, args := first.Msg()
	ce := &Error{Field: field, Message: fmt.Sprintf(format, args...)}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
