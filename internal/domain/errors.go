package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database, or is not visible to the caller.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, month outside 1..12).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when the resource exists but belongs to another user.
// It is deliberately distinct from ErrNotFound.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write is rejected by a database constraint,
// e.g. a second driving-log entry for the same calendar day.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")
