package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/jask/taskdeck/internal/audit"
	"github.com/jask/taskdeck/internal/database"
	"github.com/jask/taskdeck/internal/database/repository"
)

// Canonical status labels. Status stays a free-form string; these are only the
// values taskdeck itself writes.
const (
	StatusTodo  = "TODO"
	StatusDoing = "DOING"
	StatusDone  = "DONE"
)

// TaskService composes the record store and the owner index. It derives task
// ids, keeps the two tables consistent, and answers owner-scoped queries.
type TaskService struct {
	DB      *sql.DB
	Records *repository.TaskRepo
	Index   *repository.OwnerIndexRepo
	Events  audit.Sink

	// Mutating operations run one at a time: the index/store consistency
	// invariant spans both tables and must never be observed half-updated.
	mu sync.Mutex
}

// List returns the owner's tasks in creation order. An owner that never
// created anything gets an empty slice, not an error. An indexed id with no
// record behind it aborts the whole operation with ErrCorruptIndex.
func (s *TaskService) List(ctx context.Context, owner string) ([]repository.Task, error) {
	ids, err := s.Index.Get(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("resolve owner index: %w", err)
	}
	out := make([]repository.Task, 0, len(ids))
	for _, id := range ids {
		t, err := s.Records.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve task %s: %w", id, err)
		}
		if t == nil {
			return nil, fmt.Errorf("%w: id %q indexed for owner %q has no record", ErrCorruptIndex, id, owner)
		}
		out = append(out, *t)
	}
	return out, nil
}

// Create synthesizes the task id from (owner, name), writes the record with
// status TODO and indexes it for the owner. Creating the same (owner, name)
// again overwrites the record but does not append a second index entry, so
// create is idempotent per pair.
func (s *TaskService) Create(ctx context.Context, owner, name string) (repository.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events().Eventf("insert new task %s", name)

	key := TaskKey{Owner: owner, Name: name}
	task := repository.Task{
		ID:     key.ID(),
		Owner:  owner,
		Name:   name,
		Status: StatusTodo,
	}

	err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		if err := s.Records.PutIn(ctx, tx, task); err != nil {
			return fmt.Errorf("put task %s: %w", task.ID, err)
		}
		indexed, err := s.Index.ContainsIn(ctx, tx, owner, task.ID)
		if err != nil {
			return fmt.Errorf("check owner index: %w", err)
		}
		if indexed {
			return nil
		}
		if err := s.Index.AppendIn(ctx, tx, owner, task.ID); err != nil {
			return fmt.Errorf("append owner index: %w", err)
		}
		return nil
	})
	if err != nil {
		return repository.Task{}, err
	}
	return s.stored(ctx, task.ID)
}

// ChangeStatus replaces the status of an existing task, keeping id and name.
// A pair that was never created yields ErrNotFound instead of fabricating an
// unlisted record; when the owner has a similarly named task the error says so.
func (s *TaskService) ChangeStatus(ctx context.Context, owner, name, status string) (repository.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events().Eventf("update task %s to %s", name, status)

	key := TaskKey{Owner: owner, Name: name}
	prior, err := s.Records.Get(ctx, key.ID())
	if err != nil {
		return repository.Task{}, fmt.Errorf("get task %s: %w", key.ID(), err)
	}
	if prior == nil {
		if hint, ok := s.suggest(ctx, owner, name); ok {
			return repository.Task{}, fmt.Errorf("%w: owner %q has no task %q (did you mean %q?)", ErrNotFound, owner, name, hint)
		}
		return repository.Task{}, fmt.Errorf("%w: owner %q has no task %q", ErrNotFound, owner, name)
	}

	next := *prior
	next.Status = status
	if err := s.Records.Put(ctx, next); err != nil {
		return repository.Task{}, fmt.Errorf("put task %s: %w", next.ID, err)
	}
	return s.stored(ctx, next.ID)
}

// stored re-reads a task after a write so callers see exactly what the store
// holds, timestamps included.
func (s *TaskService) stored(ctx context.Context, id string) (repository.Task, error) {
	t, err := s.Records.Get(ctx, id)
	if err != nil {
		return repository.Task{}, fmt.Errorf("reload task %s: %w", id, err)
	}
	if t == nil {
		return repository.Task{}, fmt.Errorf("%w: task %s vanished after write", ErrCorruptIndex, id)
	}
	return *t, nil
}

// suggest finds the owner's indexed name nearest to the requested one. Names
// are recovered from the serialized ids, so no record lookups are needed.
func (s *TaskService) suggest(ctx context.Context, owner, name string) (string, bool) {
	ids, err := s.Index.Get(ctx, owner)
	if err != nil || len(ids) == 0 {
		return "", false
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, strings.TrimPrefix(id, owner+"."))
	}
	return closestName(names, name)
}

func (s *TaskService) events() audit.Sink {
	if s.Events == nil {
		return audit.Nop{}
	}
	return s.Events
}
