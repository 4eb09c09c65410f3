package service

import (
	"errors"
	"fmt"

	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/r4yfon/flashcarder/internal/store"
)

var (
	// ErrNoteInUse indicates a note cannot be deleted because flashcards
	// still reference it. The API layer maps this to HTTP 409 Conflict.
	ErrNoteInUse = errors.New("note still has flashcards")

	// ErrBatchNotFound indicates no flashcard carries the requested batch ID.
	ErrBatchNotFound = errors.New("flashcard batch not found")
)

// ServiceError wraps an unexpected failure with the operation it happened in.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "generate_batch")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err in a ServiceError. Errors callers are expected to
// branch on are returned unchanged.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrNoteInUse),
		errors.Is(err, ErrBatchNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, generation.ErrUpstream):
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
