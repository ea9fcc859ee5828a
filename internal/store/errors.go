package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrConflict is returned when a write collides with an existing entity
	// owned by someone else, for example a game name used in another channel.
	ErrConflict = errors.New("entity conflicts with existing entity")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific errors

	// ErrPersonaNotFound indicates that a guild has no persona configured.
	ErrPersonaNotFound = fmt.Errorf("%w: persona", ErrNotFound)

	// ErrDailyGameNotFound indicates that the named daily game does not exist.
	ErrDailyGameNotFound = fmt.Errorf("%w: daily game", ErrNotFound)

	// ErrChannelNotFound indicates that a channel is not registered for updates.
	ErrChannelNotFound = fmt.Errorf("%w: update channel", ErrNotFound)

	// ErrChannelExists indicates that a channel is already registered for updates.
	ErrChannelExists = fmt.Errorf("%w: update channel", ErrDuplicate)

	// ErrGameNameTaken indicates that a game name is registered in another channel.
	ErrGameNameTaken = fmt.Errorf("%w: game name registered in another channel", ErrConflict)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "persona", "daily_game")
	Operation string // The operation that failed (e.g., "get", "save")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
