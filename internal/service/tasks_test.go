package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/taskdeck/internal/database"
	"github.com/jask/taskdeck/internal/database/repository"
)

func newTestService(t *testing.T) (*TaskService, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := &TaskService{
		DB:      db,
		Records: repository.NewTaskRepo(db),
		Index:   repository.NewOwnerIndexRepo(db),
	}
	return svc, db
}

func TestListEmptyByDefault(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, _ := newTestService(t)

	list, err := svc.List(ctx, "never-seen")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreateThenList(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, "alice", "task_a")
	require.NoError(t, err)
	require.Equal(t, "alice.task_a", created.ID)
	require.Equal(t, "task_a", created.Name)
	require.Equal(t, StatusTodo, created.Status)

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "alice.task_a", list[0].ID)
	require.Equal(t, "task_a", list[0].Name)
	require.Equal(t, StatusTodo, list[0].Status)
}

func TestChangeStatusVisibleInList(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, "john", "task_a")
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(ctx, "john", "task_a", StatusDone)
	require.NoError(t, err)
	require.Equal(t, StatusDone, updated.Status)
	require.Equal(t, "task_a", updated.Name)

	list, err := svc.List(ctx, "john")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, StatusDone, list[0].Status)
	require.Equal(t, "task_a", list[0].Name)
}

func TestOwnerIsolation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, "alice", "task_a")
	require.NoError(t, err)

	list, err := svc.List(ctx, "bob")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestListPreservesCreationOrder(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, "alice", "task_a")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", "task_b")
	require.NoError(t, err)

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "task_a", list[0].Name)
	require.Equal(t, "task_b", list[1].Name)
}

func TestCreateIdempotentPerPair(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, "alice", "task_a")
	require.NoError(t, err)
	_, err = svc.ChangeStatus(ctx, "alice", "task_a", StatusDone)
	require.NoError(t, err)

	// Re-creating the same pair resets the record but must not grow the index.
	recreated, err := svc.Create(ctx, "alice", "task_a")
	require.NoError(t, err)
	require.Equal(t, StatusTodo, recreated.Status)

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, StatusTodo, list[0].Status)
}

func TestChangeStatusUnknownTask(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, db := newTestService(t)

	_, err := svc.ChangeStatus(ctx, "alice", "task_a", StatusDone)
	require.ErrorIs(t, err, ErrNotFound)

	// The fixed behavior: no orphan record is fabricated.
	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks").Scan(&count))
	require.Equal(t, 0, count)
}

func TestChangeStatusSuggestsNearName(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, "alice", "groceries")
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, "alice", "grocries", StatusDone)
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), `did you mean "groceries"?`)
}

func TestListDetectsCorruptIndex(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, db := newTestService(t)

	_, err := svc.Create(ctx, "alice", "task_a")
	require.NoError(t, err)

	// Break the invariant behind the service's back.
	_, err = db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", "alice.task_a")
	require.NoError(t, err)

	_, err = svc.List(ctx, "alice")
	require.ErrorIs(t, err, ErrCorruptIndex)
}

func TestStatusIsFreeForm(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, "alice", "task_a")
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(ctx, "alice", "task_a", "waiting on review")
	require.NoError(t, err)
	require.Equal(t, "waiting on review", updated.Status)
}
