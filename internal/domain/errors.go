package domain

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// status codes in one place.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("state changed concurrently")
)
