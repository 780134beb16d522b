package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError defines errors that originate from, or can be mapped to,
// an HTTP status returned by the remote collaborator.
type RemoteError interface {
	error
	StatusCode() int
}

// Domain error types implementing RemoteError interface
type (
	// NotFoundError indicates a resource was not found remotely
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates the session is no longer valid
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates the caller may not touch the resource
	ForbiddenError struct {
		Message string
	}

	// TransportError indicates a network-level or non-success response
	// that does not map to a more specific category
	TransportError struct {
		Message string
		Status  int
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }
func (e *TransportError) Error() string    { return e.Message }

// StatusCode implementations (RemoteError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }
func (e *TransportError) StatusCode() int    { return e.Status }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRemote       = errors.New("remote request failed")
)

// Is hooks so typed errors match their sentinels
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }
func (e *TransportError) Is(target error) bool    { return target == ErrRemote }

// ConflictError represents a resource conflict with details about the
// existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (document, folder)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the RemoteError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// FromStatusCode maps a non-success HTTP status from the collaborator
// into the matching domain error. Unknown statuses become TransportError
// so every remote failure still satisfies errors.Is(err, ErrRemote) or a
// more specific sentinel.
func FromStatusCode(status int, detail string) error {
	if detail == "" {
		detail = http.StatusText(status)
	}
	switch status {
	case http.StatusBadRequest:
		return &ValidationError{Message: detail}
	case http.StatusUnauthorized:
		return &UnauthorizedError{Message: detail}
	case http.StatusForbidden:
		return &ForbiddenError{Message: detail}
	case http.StatusNotFound:
		return &NotFoundError{Message: detail}
	case http.StatusConflict:
		return &ConflictError{Message: detail}
	default:
		return &TransportError{
			Message: fmt.Sprintf("remote returned %d: %s", status, detail),
			Status:  status,
		}
	}
}
