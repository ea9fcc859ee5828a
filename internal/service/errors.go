package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to HTTP
// status codes.
var (
	// ErrBusy indicates the task queue is at capacity and the request was not
	// accepted. API layer should map this to HTTP 503 Service Unavailable.
	ErrBusy = errors.New("bot is busy, try again shortly")

	// ErrNotFound indicates the requested persona, game or channel does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates the request collides with existing state, such as a
	// game name already in use. API layer should map this to HTTP 409 Conflict.
	ErrConflict = errors.New("resource conflict")
)

// ServiceError wraps unexpected failures with the service and operation that
// produced them.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError. A nil err yields nil.
func NewServiceError(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}

// mapStoreError translates store sentinels into service sentinels, keeping
// the store error in the chain. Validation errors pass through unchanged.
func mapStoreError(service, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case store.IsNotFoundError(err):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case store.IsDuplicateError(err), errors.Is(err, store.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return err
	default:
		return NewServiceError(service, op, err)
	}
}
