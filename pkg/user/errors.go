package user

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup. Expired
	// tokens produce ErrNotFound, not a distinct error.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicate is returned when a create or save would violate email or
	// username uniqueness.
	ErrDuplicate = errors.New("email or username already exists")
)
