// Package common defines shared constants and sentinel errors used across
// the EasyGo service layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorInvalidData   = errors.New("invalid data")

	// Service-level errors. These are the only kinds that cross the
	// service boundary; handlers translate them to HTTP status codes.
	ErrorInvalidRequest     = errors.New("invalid request")
	ErrorConflict           = errors.New("conflict")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorServiceUnavailable = errors.New("service unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
