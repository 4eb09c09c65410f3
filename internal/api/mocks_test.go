package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/service"
)

type stubNoteService struct {
	createFn func(ctx context.Context, title, content string) (*domain.Note, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*domain.Note, error)
	listFn   func(ctx context.Context) ([]*domain.Note, error)
	updateFn func(ctx context.Context, id uuid.UUID, title, content *string) (*domain.Note, error)
	deleteFn func(ctx context.Context, id uuid.UUID, cascade bool) error
}

var _ service.NoteService = (*stubNoteService)(nil)

func (s *stubNoteService) CreateNote(ctx context.Context, title, content string) (*domain.Note, error) {
	return s.createFn(ctx, title, content)
}

func (s *stubNoteService) GetNote(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	return s.getFn(ctx, id)
}

func (s *stubNoteService) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	return s.listFn(ctx)
}

func (s *stubNoteService) UpdateNote(ctx context.Context, id uuid.UUID, title, content *string) (*domain.Note, error) {
	return s.updateFn(ctx, id, title, content)
}

func (s *stubNoteService) DeleteNote(ctx context.Context, id uuid.UUID, cascade bool) error {
	return s.deleteFn(ctx, id, cascade)
}

type stubFlashcardService struct {
	generateFn    func(ctx context.Context, noteID uuid.UUID, count int) (*service.GeneratedBatch, error)
	listFn        func(ctx context.Context) ([]*domain.Batch, error)
	getFn         func(ctx context.Context, batchID string) (*domain.Batch, error)
	deleteFn      func(ctx context.Context, id uuid.UUID) error
	deleteBatchFn func(ctx context.Context, batchID string) (int64, error)
}

var _ service.FlashcardService = (*stubFlashcardService)(nil)

func (s *stubFlashcardService) GenerateBatch(ctx context.Context, noteID uuid.UUID, count int) (*service.GeneratedBatch, error) {
	return s.generateFn(ctx, noteID, count)
}

func (s *stubFlashcardService) ListBatches(ctx context.Context) ([]*domain.Batch, error) {
	return s.listFn(ctx)
}

func (s *stubFlashcardService) GetBatch(ctx context.Context, batchID string) (*domain.Batch, error) {
	return s.getFn(ctx, batchID)
}

func (s *stubFlashcardService) DeleteFlashcard(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func (s *stubFlashcardService) DeleteBatch(ctx context.Context, batchID string) (int64, error) {
	return s.deleteBatchFn(ctx, batchID)
}
