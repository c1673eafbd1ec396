package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's failure taxonomy. Handlers and callers
// match on these with errors.Is / errors.As; they are returned as values,
// never used for control flow.
var (
	// ErrNotFound is matched by NotFoundError; exported so callers can use
	// errors.Is without knowing the entity.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable marks a persistence read or write failure. The
	// in-memory state is left untouched when this is returned.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports input rejected before any mutation took place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an operation that targeted a missing or already
// terminal entity (completing a completed task, accepting a stale suggestion).
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a NotFoundError for an entity and id.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// StoreError wraps a persistence failure so it matches ErrStoreUnavailable.
func StoreError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
