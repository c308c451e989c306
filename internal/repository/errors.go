package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict is returned when an insert lost the slot to a blocking
	// booking during the transactional re-check.
	ErrConflict = errors.New("repository: interval conflicts with an existing booking")
)
