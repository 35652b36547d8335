package repositories

import "errors"

var (
	// ErrNotFound is wrapped by every lookup that finds no record.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write would break a uniqueness rule.
	ErrConflict = errors.New("conflict")
)
