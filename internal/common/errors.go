// Package common defines shared constants and sentinel errors used across
// client and server layers of langmatch. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Matchmaking errors.
	ErrStaleState     = errors.New("stale state, please try again")
	ErrTxConflict     = errors.New("transaction conflict")
	ErrAlreadyMatched = errors.New("user is already in a match")
	ErrMatchNotActive = errors.New("match is not active")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
