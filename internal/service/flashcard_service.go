package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/r4yfon/flashcarder/internal/platform/logger"
	"github.com/r4yfon/flashcarder/internal/store"
)

// DefaultMaxCount is the upper bound on cards per generation request when
// the policy does not set one.
const DefaultMaxCount = 50

// FlashcardGenerator turns note content into question/answer pairs.
// *generation.Generator implements it.
type FlashcardGenerator interface {
	Generate(ctx context.Context, content string, count int) (generation.Result, error)
}

// GenerationPolicy controls how GenerateBatch treats requests and results.
type GenerationPolicy struct {
	// MaxCount is the largest accepted count. Zero means DefaultMaxCount.
	MaxCount int
	// PersistFallback stores and returns placeholder cards when the model
	// output is unusable or the upstream call fails. When false such
	// results are rejected with an upstream error and nothing is stored.
	PersistFallback bool
}

// GeneratedBatch is the outcome of one generation run.
type GeneratedBatch struct {
	Batch *domain.Batch
	// Degraded is set when the cards are placeholders.
	Degraded bool
	Failure  generation.FailureKind
}

// FlashcardService provides flashcard and batch operations.
type FlashcardService interface {
	// GenerateBatch generates count cards from a note and stores them as one
	// batch. Count and note are checked before the model is called.
	GenerateBatch(ctx context.Context, noteID uuid.UUID, count int) (*GeneratedBatch, error)

	// ListBatches returns every batch, newest first.
	ListBatches(ctx context.Context) ([]*domain.Batch, error)

	// GetBatch returns one batch. Returns ErrBatchNotFound if no card has
	// the ID.
	GetBatch(ctx context.Context, batchID string) (*domain.Batch, error)

	// DeleteFlashcard removes one flashcard.
	DeleteFlashcard(ctx context.Context, id uuid.UUID) error

	// DeleteBatch removes every card of a batch and returns how many were
	// removed. An unknown batch is not an error.
	DeleteBatch(ctx context.Context, batchID string) (int64, error)
}

type flashcardServiceImpl struct {
	notes      store.NoteStore
	flashcards store.FlashcardStore
	tx         store.Transactor
	generator  FlashcardGenerator
	users      UserResolver
	policy     GenerationPolicy
	logger     *slog.Logger
}

var _ FlashcardService = (*flashcardServiceImpl)(nil)

// NewFlashcardService creates a FlashcardService. It returns an error if any
// of the required dependencies are nil.
func NewFlashcardService(
	notes store.NoteStore,
	flashcards store.FlashcardStore,
	tx store.Transactor,
	generator FlashcardGenerator,
	users UserResolver,
	policy GenerationPolicy,
	logger *slog.Logger,
) (FlashcardService, error) {
	if notes == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "noteStore cannot be nil"}
	}
	if flashcards == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "flashcardStore cannot be nil"}
	}
	if tx == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "transactor cannot be nil"}
	}
	if generator == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if users == nil {
		users = NewStaticUserResolver(nil)
	}
	if policy.MaxCount <= 0 {
		policy.MaxCount = DefaultMaxCount
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &flashcardServiceImpl{
		notes:      notes,
		flashcards: flashcards,
		tx:         tx,
		generator:  generator,
		users:      users,
		policy:     policy,
		logger:     logger.With(slog.String("component", "flashcard_service")),
	}, nil
}

func (s *flashcardServiceImpl) GenerateBatch(
	ctx context.Context,
	noteID uuid.UUID,
	count int,
) (*GeneratedBatch, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if count < 1 || count > s.policy.MaxCount {
		return nil, domain.NewValidationError("count",
			fmt.Sprintf("must be between 1 and %d", s.policy.MaxCount))
	}

	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, NewServiceError("generate_batch", "failed to load note", err)
	}
	if !note.HasContent() {
		return nil, domain.ErrEmptyContent
	}

	result, err := s.generator.Generate(ctx, note.Content, count)
	if err != nil {
		if !s.policy.PersistFallback || len(result.Pairs) == 0 {
			return nil, NewServiceError("generate_batch", "generation failed", err)
		}
		log.WarnContext(ctx, "upstream failed, storing placeholder card",
			slog.String("note_id", noteID.String()),
			slog.String("error", err.Error()))
	} else if result.Degraded() && !s.policy.PersistFallback {
		return nil, fmt.Errorf("%w: model output unusable (%s)", generation.ErrUpstream, result.Failure)
	}

	batchID, err := gonanoid.New()
	if err != nil {
		return nil, NewServiceError("generate_batch", "failed to create batch id", err)
	}

	createdAt := time.Now().UTC()
	userID := s.users.CurrentUserID(ctx)
	cards := make([]*domain.Flashcard, 0, len(result.Pairs))
	for _, pair := range result.Pairs {
		card, err := domain.NewFlashcard(&note.ID, userID, batchID, pair.Question, pair.Answer, createdAt)
		if err != nil {
			return nil, NewServiceError("generate_batch", "failed to build flashcard", err)
		}
		cards = append(cards, card)
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.flashcards.WithTx(tx).CreateMultiple(ctx, cards)
	})
	if err != nil {
		return nil, NewServiceError("generate_batch", "failed to save flashcards", err)
	}

	log.Info("flashcard batch generated",
		slog.String("batch_id", batchID),
		slog.String("note_id", noteID.String()),
		slog.Int("requested_count", count),
		slog.Int("card_count", len(cards)),
		slog.Bool("degraded", result.Degraded()))

	return &GeneratedBatch{
		Batch:    domain.NewBatch(batchID, &note.ID, note.Title, cards),
		Degraded: result.Degraded(),
		Failure:  result.Failure,
	}, nil
}

func (s *flashcardServiceImpl) ListBatches(ctx context.Context) ([]*domain.Batch, error) {
	entries, err := s.flashcards.ListWithNotes(ctx)
	if err != nil {
		return nil, NewServiceError("list_batches", "failed to list flashcards", err)
	}
	return domain.GroupIntoBatches(entries), nil
}

func (s *flashcardServiceImpl) GetBatch(ctx context.Context, batchID string) (*domain.Batch, error) {
	batchID = strings.TrimSpace(batchID)
	if batchID == "" {
		return nil, domain.ErrEmptyBatchID
	}

	entries, err := s.flashcards.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, NewServiceError("get_batch", "failed to load batch", err)
	}

	batches := domain.GroupIntoBatches(entries)
	if len(batches) == 0 {
		return nil, ErrBatchNotFound
	}
	return batches[0], nil
}

func (s *flashcardServiceImpl) DeleteFlashcard(ctx context.Context, id uuid.UUID) error {
	if err := s.flashcards.Delete(ctx, id); err != nil {
		return NewServiceError("delete_flashcard", "failed to delete flashcard", err)
	}
	return nil
}

func (s *flashcardServiceImpl) DeleteBatch(ctx context.Context, batchID string) (int64, error) {
	batchID = strings.TrimSpace(batchID)
	if batchID == "" {
		return 0, domain.ErrEmptyBatchID
	}

	n, err := s.flashcards.DeleteByBatch(ctx, batchID)
	if err != nil {
		return 0, NewServiceError("delete_batch", "failed to delete batch", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("flashcard batch deleted",
		slog.String("batch_id", batchID),
		slog.Int64("count", n))
	return n, nil
}
