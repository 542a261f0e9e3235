package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/roach88/fuzzint/internal/canonical"
)

// Evaluation is one entry of the evaluation log.
//
// Exactly one of Result and ErrorCode is non-empty.
type Evaluation struct {
	ID        string
	Seq       int64
	Op        string
	Operands  []string
	Terms     int
	Result    string
	ErrorCode string
}

// HistoryFilter narrows Evaluations. Zero values mean no restriction.
type HistoryFilter struct {
	// Limit keeps only the most recent N entries.
	Limit int

	// Op keeps only entries for one operation.
	Op string
}

// RecordEvaluation appends ev to the log.
// Uses ON CONFLICT(id) DO NOTHING so recording the same id twice is a no-op.
func (s *Store) RecordEvaluation(ctx context.Context, ev Evaluation) error {
	operands, err := marshalOperands(ev.Operands)
	if err != nil {
		return fmt.Errorf("record evaluation %s: %w", ev.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, seq, op, operands, terms, result, error_code)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, ev.ID, ev.Seq, ev.Op, operands, ev.Terms, ev.Result, ev.ErrorCode)
	if err != nil {
		return fmt.Errorf("record evaluation %s: %w", ev.ID, err)
	}
	return nil
}

// Evaluations returns logged entries in seq order, oldest first.
// With a Limit, the most recent Limit entries are returned (still oldest first).
func (s *Store) Evaluations(ctx context.Context, f HistoryFilter) ([]Evaluation, error) {
	query := `
		SELECT id, seq, op, operands, terms, result, error_code
		FROM evaluations`
	var args []any
	if f.Op != "" {
		query += ` WHERE op = ?`
		args = append(args, f.Op)
	}
	query += ` ORDER BY seq DESC, id COLLATE BINARY DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	evals := []Evaluation{}
	for rows.Next() {
		var ev Evaluation
		var operands string
		if err := rows.Scan(&ev.ID, &ev.Seq, &ev.Op, &operands, &ev.Terms, &ev.Result, &ev.ErrorCode); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		if ev.Operands, err = unmarshalOperands(operands); err != nil {
			return nil, fmt.Errorf("evaluation %s: %w", ev.ID, err)
		}
		evals = append(evals, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}

	slices.Reverse(evals)
	return evals, nil
}

// LastSeq returns the highest logged seq, or 0 for an empty log.
// Used to resume the logical clock across process runs.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM evaluations`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}

// marshalOperands converts the operand list to canonical JSON TEXT.
func marshalOperands(operands []string) (string, error) {
	if operands == nil {
		operands = []string{}
	}
	data, err := canonical.Marshal(operands)
	if err != nil {
		return "", fmt.Errorf("marshal operands: %w", err)
	}
	return string(data), nil
}

func unmarshalOperands(data string) ([]string, error) {
	operands := []string{}
	if err := json.Unmarshal([]byte(data), &operands); err != nil {
		return nil, fmt.Errorf("unmarshal operands: %w", err)
	}
	return operands, nil
}
