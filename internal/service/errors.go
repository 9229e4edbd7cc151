package service

import "errors"

var (
	// ErrNotFound marks a lookup for a (owner, name) pair that was never
	// created. Callers can match it with errors.Is.
	ErrNotFound = errors.New("task not found")

	// ErrCorruptIndex marks an internal-consistency violation: the owner
	// index references an id with no record behind it. Not retriable.
	ErrCorruptIndex = errors.New("corrupt owner index")
)
