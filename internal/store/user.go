package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
)

// UserStore defines the persistence operations for users.
type UserStore interface {
	// EnsureByUsername returns the user with the given username, creating it
	// first if needed. Safe to call concurrently and repeatedly.
	EnsureByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
