package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quantabase/qmorph/internal/ir"
)

// ErrNotFound reports a library miss.
var ErrNotFound = errors.New("circuit not found")

const recordColumns = `id, hash, name, framework, n_qubits, n_clbits, n_ops, created_at`

// Load retrieves a circuit by id, content hash, or name (most recent save
// wins for names). The IR snapshot is re-validated on the way out, so a
// corrupt row surfaces as an error rather than an invalid circuit.
func (s *Store) Load(ctx context.Context, ref string) (*ir.Circuit, *CircuitRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+`, ir FROM circuits
		 WHERE id = ? OR hash = ? OR name = ?
		 ORDER BY id DESC LIMIT 1`,
		ref, ref, ref)

	var rec CircuitRecord
	var snapshot string
	err := row.Scan(&rec.ID, &rec.Hash, &rec.Name, &rec.Framework,
		&rec.NumQubits, &rec.NumClbits, &rec.NumOps, &rec.CreatedAt, &snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("load %q: %w", ref, ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load %q: %w", ref, err)
	}

	c, err := ir.UnmarshalCircuit([]byte(snapshot))
	if err != nil {
		return nil, nil, fmt.Errorf("load %q: %w", ref, err)
	}
	return c, &rec, nil
}

// List returns every record in the library, newest first.
func (s *Store) List(ctx context.Context) ([]CircuitRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM circuits ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list circuits: %w", err)
	}
	defer rows.Close()

	var records []CircuitRecord
	for rows.Next() {
		var rec CircuitRecord
		if err := rows.Scan(&rec.ID, &rec.Hash, &rec.Name, &rec.Framework,
			&rec.NumQubits, &rec.NumClbits, &rec.NumOps, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("list circuits: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) byHash(ctx context.Context, hash string) (*CircuitRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM circuits WHERE hash = ?`, hash)
	var rec CircuitRecord
	err := row.Scan(&rec.ID, &rec.Hash, &rec.Name, &rec.Framework,
		&rec.NumQubits, &rec.NumClbits, &rec.NumOps, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
