package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/quantabase/qmorph/internal/ir"
)

// CircuitRecord is the library metadata for one saved circuit.
type CircuitRecord struct {
	ID        string `json:"id"`
	Hash      string `json:"hash"`
	Name      string `json:"name"`
	Framework string `json:"framework"`
	NumQubits int    `json:"n_qubits"`
	NumClbits int    `json:"n_clbits"`
	NumOps    int    `json:"n_ops"`
	CreatedAt string `json:"created_at"`
}

// Save stores a circuit's canonical IR snapshot under its content hash.
// Saving is idempotent: a circuit whose hash is already in the library
// returns the existing record untouched.
func (s *Store) Save(ctx context.Context, name, framework string, c *ir.Circuit) (*CircuitRecord, error) {
	if name == "" {
		return nil, fmt.Errorf("save: empty circuit name")
	}

	snapshot, err := ir.MarshalCanonical(c)
	if err != nil {
		return nil, fmt.Errorf("save %q: %w", name, err)
	}
	hash, err := ir.Hash(c)
	if err != nil {
		return nil, fmt.Errorf("save %q: %w", name, err)
	}

	if existing, err := s.byHash(ctx, hash); err == nil {
		return existing, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("save %q: %w", name, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("save %q: generate id: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO circuits (id, hash, name, framework, n_qubits, n_clbits, n_ops, ir)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), hash, name, framework,
		c.NumQubits(), c.NumClbits(), c.Len(), string(snapshot))
	if err != nil {
		return nil, fmt.Errorf("save %q: %w", name, err)
	}

	return s.byHash(ctx, hash)
}
