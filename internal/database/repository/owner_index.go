package repository

import (
	"context"
	"database/sql"
)

// OwnerIndexRepo is the owner index: a durable owner -> ordered id sequence
// mapping. The sequence is append-only.
type OwnerIndexRepo struct {
	db *sql.DB
}

func NewOwnerIndexRepo(db *sql.DB) *OwnerIndexRepo { return &OwnerIndexRepo{db: db} }

// Get returns the owner's task ids in append order. A nil slice means the
// owner has never inserted; that is the expected state, not an error.
func (r *OwnerIndexRepo) Get(ctx context.Context, owner string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT task_id FROM owner_tasks WHERE owner = ? ORDER BY seq`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Append adds id to the end of the owner's sequence, creating the sequence on
// first use. Prior order is never disturbed.
func (r *OwnerIndexRepo) Append(ctx context.Context, owner, id string) error {
	return r.AppendIn(ctx, r.db, owner, id)
}

// AppendIn is Append against the given executor (the db itself or an open tx).
func (r *OwnerIndexRepo) AppendIn(ctx context.Context, ex executor, owner, id string) error {
	_, err := ex.ExecContext(ctx, `
	INSERT INTO owner_tasks(owner, seq, task_id)
	VALUES (?, COALESCE((SELECT MAX(seq) + 1 FROM owner_tasks WHERE owner = ?), 0), ?);
	`, owner, owner, id)
	return err
}

// Contains reports whether id is already present in the owner's sequence.
func (r *OwnerIndexRepo) Contains(ctx context.Context, owner, id string) (bool, error) {
	return r.ContainsIn(ctx, r.db, owner, id)
}

// ContainsIn is Contains against the given executor.
func (r *OwnerIndexRepo) ContainsIn(ctx context.Context, ex executor, owner, id string) (bool, error) {
	var n int
	if err := ex.QueryRowContext(ctx, `SELECT COUNT(1) FROM owner_tasks WHERE owner = ? AND task_id = ?`, owner, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
