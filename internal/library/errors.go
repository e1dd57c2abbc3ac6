package library

import "errors"

// Sentinel errors returned by Store methods. Callers branch on these with
// errors.Is instead of inspecting driver error codes.
var (
	// ErrNotFound is returned when no row matches the given id.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned on unique constraint violations.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrConstraint is returned on foreign key and check violations.
	ErrConstraint = errors.New("constraint violation")
)
