package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
)

// PreviewLength is the rune budget of note previews in list responses.
const PreviewLength = 150

// CreateNoteRequest is the payload of POST /api/notes.
type CreateNoteRequest struct {
	Title   string `json:"title"   validate:"max=255"`
	Content string `json:"content" validate:"required"`
}

// UpdateNoteRequest is the payload of PATCH /api/notes/{id}. Absent fields
// are left unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title"   validate:"omitempty,max=255"`
	Content *string `json:"content"`
}

// GenerateFlashcardsRequest is the payload of POST /api/flashcards.
type GenerateFlashcardsRequest struct {
	NoteID string `json:"noteId" validate:"required,uuid"`
	Count  *int   `json:"count"  validate:"omitempty,gte=1"`
}

// NoteResponse is the JSON form of a note.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Preview   string    `json:"preview,omitempty"`
	UserID    *string   `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteEnvelope wraps a single note.
type NoteEnvelope struct {
	Note NoteResponse `json:"note"`
}

// NoteListResponse is the body of GET /api/notes.
type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
}

// FlashcardResponse is the JSON form of a flashcard.
type FlashcardResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	NoteID    *string   `json:"noteId"`
	UserID    *string   `json:"userId"`
	BatchID   string    `json:"batchId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GenerateFlashcardsResponse is the body of a successful generation.
type GenerateFlashcardsResponse struct {
	BatchID    string              `json:"batchId"`
	Flashcards []FlashcardResponse `json:"flashcards"`
	Degraded   bool                `json:"degraded,omitempty"`
}

// BatchResponse is the JSON form of a batch.
type BatchResponse struct {
	BatchID   string              `json:"batchId"`
	NoteID    *string             `json:"noteId"`
	NoteTitle string              `json:"noteTitle"`
	CreatedAt time.Time           `json:"createdAt"`
	Cards     []FlashcardResponse `json:"cards"`
}

// BatchEnvelope wraps a single batch.
type BatchEnvelope struct {
	Batch BatchResponse `json:"batch"`
}

// BatchListResponse is the body of GET /api/flashcards.
type BatchListResponse struct {
	Batches []BatchResponse `json:"batches"`
}

// DeleteFlashcardResponse is the body of DELETE /api/flashcards/{id}.
type DeleteFlashcardResponse struct {
	Success bool `json:"success"`
}

// DeleteBatchResponse is the body of DELETE /api/flashcards/batch/{batchId}.
type DeleteBatchResponse struct {
	Count   int64  `json:"count"`
	Message string `json:"message"`
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func noteToResponse(n *domain.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Content:   n.Content,
		UserID:    optionalID(n.UserID),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func flashcardToResponse(c *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:        c.ID.String(),
		Question:  c.Question,
		Answer:    c.Answer,
		NoteID:    optionalID(c.NoteID),
		UserID:    optionalID(c.UserID),
		BatchID:   c.BatchID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func flashcardsToResponse(cards []*domain.Flashcard) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, flashcardToResponse(c))
	}
	return out
}

func batchToResponse(b *domain.Batch) BatchResponse {
	return BatchResponse{
		BatchID:   b.ID,
		NoteID:    optionalID(b.NoteID),
		NoteTitle: b.NoteTitle,
		CreatedAt: b.CreatedAt,
		Cards:     flashcardsToResponse(b.Cards),
	}
}
