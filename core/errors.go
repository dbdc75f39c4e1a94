package core

import "errors"

// Backend failure taxonomy. Backends wrap these with context via
// fmt.Errorf and %w; callers match with errors.Is.
var (
	// ErrNotFound means no record exists for the requested identifier.
	ErrNotFound = errors.New("object not found")

	// ErrTypeMismatch means a record exists but its stored variant does
	// not match the requested type.
	ErrTypeMismatch = errors.New("stored variant does not match requested type")

	// ErrDeserialization means the stored record is present but
	// structurally invalid.
	ErrDeserialization = errors.New("stored record is malformed")

	// ErrUnavailable means the storage medium itself is unreachable.
	ErrUnavailable = errors.New("storage backend unavailable")
)
