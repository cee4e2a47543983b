package db

import "errors"

var (
	// ErrUserNotFound is returned when a user lookup by a key that is
	// expected to exist finds no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrConstraintUnique is returned when an insert violates a unique
	// constraint (duplicate email, duplicate queued job in a cooldown bucket).
	ErrConstraintUnique = errors.New("unique constraint violation")
	// ErrMissingFields is returned when a record lacks required fields.
	ErrMissingFields = errors.New("missing required fields")
)
