// Package common defines shared constants and sentinel errors used across
// the contact book server and client. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors (missing, empty, or unknown bearer token, or bad
	// login credentials).
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration conflicts (username already taken).
	ErrorAlreadyExists = errors.New("already exists")

	// Request-shape validation failures, raised before the service
	// layer is invoked.
	ErrorValidation = errors.New("validation error")
)
