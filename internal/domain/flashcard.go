package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flashcard is a question/answer pair produced by one generation run.
// BatchID is assigned at creation and never changes.
type Flashcard struct {
	ID        uuid.UUID
	Question  string
	Answer    string
	NoteID    *uuid.UUID
	UserID    *uuid.UUID
	BatchID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFlashcard creates a Flashcard linked to a note, a user and a batch.
// The timestamp is passed in so every card of a batch shares it.
func NewFlashcard(
	noteID, userID *uuid.UUID,
	batchID, question, answer string,
	createdAt time.Time,
) (*Flashcard, error) {
	card := &Flashcard{
		ID:        uuid.New(),
		Question:  question,
		Answer:    answer,
		NoteID:    noteID,
		UserID:    userID,
		BatchID:   batchID,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: createdAt.UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrEmptyFlashcardID
	}
	if strings.TrimSpace(f.Question) == "" {
		return ErrEmptyQuestion
	}
	if strings.TrimSpace(f.Answer) == "" {
		return ErrEmptyAnswer
	}
	if f.BatchID == "" {
		return ErrEmptyBatchID
	}
	return nil
}
