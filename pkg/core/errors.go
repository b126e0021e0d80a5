package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned when an id has no valid record: the file is
	// absent, unreadable or does not parse.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for malformed requests rejected before any I/O.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyPatch is returned when an update carries neither title nor content.
	ErrEmptyPatch = errors.New("empty patch")
)
