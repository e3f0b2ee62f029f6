package models

import "errors"

var (
	// ErrNotFound is returned when no address exists for the requested id.
	ErrNotFound = errors.New("address not found")
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation error")
	// ErrStoreUnavailable wraps any failure reaching the persistence layer.
	ErrStoreUnavailable = errors.New("store unavailable")
)
