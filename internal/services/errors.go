package services

import "errors"

// Sentinel errors the handlers map onto HTTP status codes. Services wrap
// these with context via fmt.Errorf("...: %w", Err...).
var (
	// ErrValidation covers missing or malformed input, including bad ID
	// formats and unknown enum values.
	ErrValidation = errors.New("validation failed")

	// ErrConflict covers duplicate friendships and duplicate ratings.
	ErrConflict = errors.New("conflict")

	// ErrNotFound is returned both when a target does not exist and when
	// the caller lacks permission for it, so callers cannot probe for
	// existence.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is used where the target is known to the caller and
	// hiding it serves no purpose, e.g. deleting someone else's swap.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized covers failed login attempts.
	ErrUnauthorized = errors.New("unauthorized")
)
