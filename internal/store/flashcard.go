package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
)

// FlashcardStore defines the persistence operations for flashcards.
// There is no update operation: batch membership never changes.
type FlashcardStore interface {
	// CreateMultiple inserts all cards in a single statement. Either every
	// card is stored or none is.
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error

	// Delete removes one flashcard. Returns ErrFlashcardNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByBatch removes every flashcard of a batch and returns how many
	// rows were removed. An unknown batch removes zero rows without error.
	DeleteByBatch(ctx context.Context, batchID string) (int64, error)

	// DeleteByNote removes every flashcard generated from a note.
	DeleteByNote(ctx context.Context, noteID uuid.UUID) (int64, error)

	// ListWithNotes returns every flashcard joined with its note title,
	// newest first.
	ListWithNotes(ctx context.Context) ([]domain.BatchEntry, error)

	// ListByBatch returns the cards of one batch joined with the note title,
	// oldest first. An unknown batch returns an empty slice.
	ListByBatch(ctx context.Context, batchID string) ([]domain.BatchEntry, error)

	// WithTx returns a FlashcardStore that runs its queries on tx.
	WithTx(tx *sql.Tx) FlashcardStore
}
