package survey

import "errors"

var (
	// ErrNotFound is returned when the requested survey does not exist, or
	// when no survey is currently active.
	ErrNotFound = errors.New("survey not found")

	// ErrAuthRequired is returned by Submit when no authenticated user
	// identity was resolved for the request.
	ErrAuthRequired = errors.New("authentication required")

	// ErrValidation is returned when a submission is malformed. No writes
	// are performed.
	ErrValidation = errors.New("invalid submission")
)
