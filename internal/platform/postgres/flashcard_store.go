package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/platform/logger"
	"github.com/r4yfon/flashcarder/internal/store"
)

// PostgresFlashcardStore implements store.FlashcardStore.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a flashcard store on db. If logger is nil
// the default logger is used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

const insertFlashcardColumns = 9

// CreateMultiple implements store.FlashcardStore. Cards are written in one
// INSERT, and each card's index in the slice is stored as its position in
// the batch.
func (s *PostgresFlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("flashcard validation failed during create",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return err
		}
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO flashcards
		(id, question, answer, note_id, user_id, batch_id, position, created_at, updated_at)
		VALUES `)

	args := make([]any, 0, len(cards)*insertFlashcardColumns)
	for i, card := range cards {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * insertFlashcardColumns
		sb.WriteString("(")
		for col := 1; col <= insertFlashcardColumns; col++ {
			if col > 1 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", base+col)
		}
		sb.WriteString(")")

		args = append(args,
			card.ID,
			card.Question,
			card.Answer,
			toNullUUID(card.NoteID),
			toNullUUID(card.UserID),
			card.BatchID,
			i,
			card.CreatedAt,
			card.UpdatedAt,
		)
	}

	if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
		log.Error("failed to insert flashcards",
			slog.String("error", err.Error()),
			slog.String("batch_id", cards[0].BatchID),
			slog.Int("count", len(cards)))
		return MapError(err)
	}

	log.Info("flashcards created",
		slog.String("batch_id", cards[0].BatchID),
		slog.Int("count", len(cards)))
	return nil
}

// Delete implements store.FlashcardStore.
func (s *PostgresFlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return MapDeleteError(err)
	}

	if err := CheckRowsAffected(result, store.ErrFlashcardNotFound); err != nil {
		log.Debug("flashcard not found for delete", slog.String("flashcard_id", id.String()))
		return err
	}

	log.Info("flashcard deleted", slog.String("flashcard_id", id.String()))
	return nil
}

// DeleteByBatch implements store.FlashcardStore.
func (s *PostgresFlashcardStore) DeleteByBatch(ctx context.Context, batchID string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	n, err := s.deleteWhere(ctx, `DELETE FROM flashcards WHERE batch_id = $1`, batchID)
	if err != nil {
		log.Error("failed to delete flashcard batch",
			slog.String("error", err.Error()),
			slog.String("batch_id", batchID))
		return 0, err
	}

	log.Info("flashcard batch deleted",
		slog.String("batch_id", batchID),
		slog.Int64("count", n))
	return n, nil
}

// DeleteByNote implements store.FlashcardStore.
func (s *PostgresFlashcardStore) DeleteByNote(ctx context.Context, noteID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	n, err := s.deleteWhere(ctx, `DELETE FROM flashcards WHERE note_id = $1`, noteID)
	if err != nil {
		log.Error("failed to delete flashcards of note",
			slog.String("error", err.Error()),
			slog.String("note_id", noteID.String()))
		return 0, err
	}

	log.Info("flashcards of note deleted",
		slog.String("note_id", noteID.String()),
		slog.Int64("count", n))
	return n, nil
}

func (s *PostgresFlashcardStore) deleteWhere(ctx context.Context, query string, arg any) (int64, error) {
	result, err := s.db.ExecContext(ctx, query, arg)
	if err != nil {
		return 0, MapDeleteError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

const selectFlashcardWithNote = `
	SELECT f.id, f.question, f.answer, f.note_id, f.user_id, f.batch_id,
	       f.created_at, f.updated_at, n.title
	FROM flashcards f
	LEFT JOIN notes n ON n.id = f.note_id
`

// ListWithNotes implements store.FlashcardStore.
func (s *PostgresFlashcardStore) ListWithNotes(ctx context.Context) ([]domain.BatchEntry, error) {
	query := selectFlashcardWithNote + `ORDER BY f.created_at DESC, f.batch_id, f.position`
	return s.queryEntries(ctx, query)
}

// ListByBatch implements store.FlashcardStore.
func (s *PostgresFlashcardStore) ListByBatch(ctx context.Context, batchID string) ([]domain.BatchEntry, error) {
	query := selectFlashcardWithNote + `WHERE f.batch_id = $1 ORDER BY f.position, f.created_at`
	return s.queryEntries(ctx, query, batchID)
}

func (s *PostgresFlashcardStore) queryEntries(ctx context.Context, query string, args ...any) ([]domain.BatchEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query flashcards", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]domain.BatchEntry, 0)
	for rows.Next() {
		var (
			card   domain.Flashcard
			noteID uuid.NullUUID
			userID uuid.NullUUID
			title  sql.NullString
		)
		if err := rows.Scan(
			&card.ID,
			&card.Question,
			&card.Answer,
			&noteID,
			&userID,
			&card.BatchID,
			&card.CreatedAt,
			&card.UpdatedAt,
			&title,
		); err != nil {
			log.Error("failed to scan flashcard row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan flashcard: %w", err)
		}

		card.NoteID = fromNullUUID(noteID)
		card.UserID = fromNullUUID(userID)

		entry := domain.BatchEntry{Card: &card}
		if title.Valid {
			t := title.String
			entry.NoteTitle = &t
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating flashcard rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return entries, nil
}

// WithTx implements store.FlashcardStore.
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}
