// Package shared holds sentinel errors used across the service layers.
package shared

import "errors"

var (

	// common errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")

	// auth-specific errors
	ErrConflict           = errors.New("username already exists")
	ErrValidation         = errors.New("username and password required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)
