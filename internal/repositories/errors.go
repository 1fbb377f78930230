package repositories

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict is returned when an update loses an optimistic
	// locking race: the row exists but its version has moved on.
	ErrVersionConflict = errors.New("version conflict")
)
