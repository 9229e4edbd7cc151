package repository

import "time"

// Task represents a task row. ID is the serialized composite key
// "<owner>.<name>"; Owner and Name are kept as separate columns so the key
// stays structured inside the store.
type Task struct {
	ID        string
	Owner     string
	Name      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
