package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/platform/logger"
	"github.com/r4yfon/flashcarder/internal/store"
)

// NoteService provides note operations.
type NoteService interface {
	// CreateNote saves a new note owned by the current user.
	CreateNote(ctx context.Context, title, content string) (*domain.Note, error)

	// GetNote retrieves a note by its ID.
	GetNote(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// ListNotes returns every note, newest first.
	ListNotes(ctx context.Context) ([]*domain.Note, error)

	// UpdateNote changes the title and/or content of a note. Nil arguments
	// leave the field unchanged.
	UpdateNote(ctx context.Context, id uuid.UUID, title, content *string) (*domain.Note, error)

	// DeleteNote removes a note. Without cascade it returns ErrNoteInUse
	// while flashcards reference the note; with cascade those flashcards are
	// removed first in the same transaction.
	DeleteNote(ctx context.Context, id uuid.UUID, cascade bool) error
}

type noteServiceImpl struct {
	notes      store.NoteStore
	flashcards store.FlashcardStore
	tx         store.Transactor
	users      UserResolver
	logger     *slog.Logger
}

var _ NoteService = (*noteServiceImpl)(nil)

// NewNoteService creates a NoteService. It returns an error if any of the
// required dependencies are nil.
func NewNoteService(
	notes store.NoteStore,
	flashcards store.FlashcardStore,
	tx store.Transactor,
	users UserResolver,
	logger *slog.Logger,
) (NoteService, error) {
	if notes == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "noteStore cannot be nil"}
	}
	if flashcards == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "flashcardStore cannot be nil"}
	}
	if tx == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "transactor cannot be nil"}
	}
	if users == nil {
		users = NewStaticUserResolver(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &noteServiceImpl{
		notes:      notes,
		flashcards: flashcards,
		tx:         tx,
		users:      users,
		logger:     logger.With(slog.String("component", "note_service")),
	}, nil
}

func (s *noteServiceImpl) CreateNote(ctx context.Context, title, content string) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	note, err := domain.NewNote(s.users.CurrentUserID(ctx), title, content)
	if err != nil {
		log.Debug("rejected note", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, NewServiceError("create_note", "failed to save note", err)
	}

	return note, nil
}

func (s *noteServiceImpl) GetNote(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_note", "failed to retrieve note", err)
	}
	return note, nil
}

func (s *noteServiceImpl) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_notes", "failed to list notes", err)
	}
	return notes, nil
}

func (s *noteServiceImpl) UpdateNote(
	ctx context.Context,
	id uuid.UUID,
	title, content *string,
) (*domain.Note, error) {
	if title == nil && content == nil {
		return nil, domain.ErrNoNoteChanges
	}

	var updated *domain.Note
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		notes := s.notes.WithTx(tx)

		note, err := notes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := note.Apply(title, content); err != nil {
			return err
		}
		if err := notes.Update(ctx, note); err != nil {
			return err
		}

		updated = note
		return nil
	})
	if err != nil {
		return nil, NewServiceError("update_note", "failed to update note", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("note updated",
		slog.String("note_id", id.String()))
	return updated, nil
}

func (s *noteServiceImpl) DeleteNote(ctx context.Context, id uuid.UUID, cascade bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !cascade {
		err := s.notes.Delete(ctx, id)
		if errors.Is(err, store.ErrReferenced) {
			log.Info("note delete refused, flashcards still reference it",
				slog.String("note_id", id.String()))
			return errors.Join(ErrNoteInUse, err)
		}
		return NewServiceError("delete_note", "failed to delete note", err)
	}

	var removed int64
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		n, err := s.flashcards.WithTx(tx).DeleteByNote(ctx, id)
		if err != nil {
			return err
		}
		removed = n
		return s.notes.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return NewServiceError("delete_note", "failed to delete note and flashcards", err)
	}

	log.Info("note deleted with its flashcards",
		slog.String("note_id", id.String()),
		slog.Int64("flashcards_removed", removed))
	return nil
}
