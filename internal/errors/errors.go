// Package errors provides error code definitions for Smart Notes.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a recoverable failure class. Callers surface these as
// user-facing messages; none of them leaves the collection partially mutated.
type ErrorCode string

const (
	// ErrEmptyNote rejects creation of a note with no text and no image.
	ErrEmptyNote ErrorCode = "EMPTY_NOTE"

	// ErrNotFound indicates a mutation referenced a stale note id.
	ErrNotFound ErrorCode = "NOT_FOUND"

	// ErrNoOwner indicates a remote-mode mutation with no active identity.
	ErrNoOwner ErrorCode = "NO_OWNER"

	// ErrBackendUnavailable indicates a transport failure from a persistence
	// backend. The authoritative collection is left unchanged.
	ErrBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
)

// AppError carries a code, a human-readable message and an optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Is reports whether err (or anything it wraps) carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, or "" when err has none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
