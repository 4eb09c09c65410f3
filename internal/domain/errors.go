// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a domain entity fails validation.
// Every entity-specific validation error below wraps it, so callers can
// classify any of them with errors.Is(err, ErrValidation).
var ErrValidation = errors.New("validation failed")

// Entity validation errors.
var (
	ErrEmptyContent = fmt.Errorf("%w: content cannot be empty", ErrValidation)
	ErrInvalidID    = fmt.Errorf("%w: invalid ID", ErrValidation)

	ErrEmptyNoteID = fmt.Errorf("%w: note ID cannot be empty", ErrValidation)

	ErrEmptyFlashcardID = fmt.Errorf("%w: flashcard ID cannot be empty", ErrValidation)
	ErrEmptyQuestion    = fmt.Errorf("%w: question cannot be empty", ErrValidation)
	ErrEmptyAnswer      = fmt.Errorf("%w: answer cannot be empty", ErrValidation)
	ErrEmptyBatchID     = fmt.Errorf("%w: batch ID cannot be empty", ErrValidation)

	ErrEmptyUserID   = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUsername = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrNoNoteChanges = fmt.Errorf("%w: at least one of title or content must be provided", ErrValidation)
)

// ValidationError describes a single invalid field. It unwraps to ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
