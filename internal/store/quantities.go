package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Quantity is a named interval, fuzzy set or scalar.
//
// Literal is the display form the value was defined with; Lower and Upper are
// the bounds of its interval (both equal to the value for a scalar).
type Quantity struct {
	Name       string
	Kind       string
	Literal    string
	Lower      apd.Decimal
	Upper      apd.Decimal
	CreatedSeq int64
}

// Define stores q under q.Name, replacing any earlier definition.
// CreatedSeq is assigned by the store as one past the highest existing value
// and is returned.
func (s *Store) Define(ctx context.Context, q Quantity) (int64, error) {
	if q.Name == "" {
		return 0, fmt.Errorf("define: name is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("define %s: %w", q.Name, err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(created_seq), 0) + 1 FROM quantities`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("define %s: next seq: %w", q.Name, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO quantities (name, kind, literal, lower, upper, created_seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			kind = excluded.kind,
			literal = excluded.literal,
			lower = excluded.lower,
			upper = excluded.upper,
			created_seq = excluded.created_seq
	`, q.Name, q.Kind, q.Literal, q.Lower, q.Upper, seq)
	if err != nil {
		return 0, fmt.Errorf("define %s: %w", q.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("define %s: commit: %w", q.Name, err)
	}
	return seq, nil
}

// Lookup returns the quantity stored under name. Returns an error wrapping
// ErrNotFound when there is none.
func (s *Store) Lookup(ctx context.Context, name string) (Quantity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, kind, literal, lower, upper, created_seq
		FROM quantities
		WHERE name = ?
	`, name)

	q, err := scanQuantity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Quantity{}, fmt.Errorf("quantity %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Quantity{}, fmt.Errorf("lookup %s: %w", name, err)
	}
	return q, nil
}

// List returns every stored quantity ordered by name.
// Returns an empty slice (not nil) when the catalog is empty.
func (s *Store) List(ctx context.Context) ([]Quantity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, kind, literal, lower, upper, created_seq
		FROM quantities
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query quantities: %w", err)
	}
	defer rows.Close()

	quantities := []Quantity{}
	for rows.Next() {
		q, err := scanQuantity(rows)
		if err != nil {
			return nil, err
		}
		quantities = append(quantities, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quantities: %w", err)
	}
	return quantities, nil
}

// Delete removes the quantity stored under name. Returns an error wrapping
// ErrNotFound when there is none.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quantities WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("quantity %q: %w", name, ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuantity(r rowScanner) (Quantity, error) {
	var q Quantity
	if err := r.Scan(&q.Name, &q.Kind, &q.Literal, &q.Lower, &q.Upper, &q.CreatedSeq); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quantity{}, err
		}
		return Quantity{}, fmt.Errorf("scan quantity: %w", err)
	}
	return q, nil
}
