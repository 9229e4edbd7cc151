package repository

import (
	"context"
	"database/sql"
)

// executor abstracts *sql.DB and *sql.Tx so mutating methods can run either
// standalone or inside a service-owned transaction.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TaskRepo is the record store: a durable id -> Task mapping.
type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

// Put is an unconditional upsert. An existing record under the same id is
// overwritten; created_at is preserved on conflict.
func (r *TaskRepo) Put(ctx context.Context, t Task) error {
	return r.PutIn(ctx, r.db, t)
}

// PutIn is Put against the given executor (the db itself or an open tx).
func (r *TaskRepo) PutIn(ctx context.Context, ex executor, t Task) error {
	_, err := ex.ExecContext(ctx, `
	INSERT INTO tasks(id, owner, name, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 owner=excluded.owner,
	 name=excluded.name,
	 status=excluded.status,
	 updated_at=CURRENT_TIMESTAMP;
	`, t.ID, t.Owner, t.Name, t.Status)
	return err
}

// Get returns nil, nil when no record exists under id. Callers decide whether
// absence is expected (a fresh pair) or an invariant breach (an indexed id).
func (r *TaskRepo) Get(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, owner, name, status, created_at, updated_at FROM tasks WHERE id = ?`, id)
	var t Task
	if err := row.Scan(&t.ID, &t.Owner, &t.Name, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
