package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
)

// NoteStore defines the persistence operations for notes.
type NoteStore interface {
	// Create saves a new note. Returns validation errors if the note is invalid.
	Create(ctx context.Context, note *domain.Note) error

	// GetByID retrieves a note by ID. Returns ErrNoteNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// List returns all notes, newest first.
	List(ctx context.Context) ([]*domain.Note, error)

	// Update saves the title, content and updated timestamp of an existing note.
	// Returns ErrNoteNotFound if it does not exist.
	Update(ctx context.Context, note *domain.Note) error

	// Delete removes a note. Returns ErrNoteNotFound if it does not exist and
	// ErrReferenced if flashcards still point at it.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a NoteStore that runs its queries on tx.
	WithTx(tx *sql.Tx) NoteStore
}
