// Package apperror defines the application's error taxonomy.
//
// Services return *AppError values wrapping one of the sentinel errors below.
// The handler layer uses errors.Is to map sentinels to HTTP status codes, so
// no other layer needs to know about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

type AppError struct {
	Err     error  // sentinel cause, for errors.Is checks
	Message string // human-readable message, safe to send to clients
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// DuplicateUser is returned when registration hits an already-taken email.
// The message is part of the wire contract.
func DuplicateUser() *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: "User already exists",
	}
}

// InvalidCredentials covers both unknown-email and wrong-password login
// failures. The two cases are deliberately indistinguishable to the client.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "Invalid credentials",
	}
}

// Unauthorized is returned for missing, malformed, invalid, or expired
// bearer tokens. The message distinguishes the cases; the status (401) and
// the client's reaction (force re-login) do not.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}
