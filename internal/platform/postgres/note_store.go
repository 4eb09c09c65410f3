package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/platform/logger"
	"github.com/r4yfon/flashcarder/internal/store"
)

// PostgresNoteStore implements store.NoteStore.
type PostgresNoteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNoteStore creates a note store on db. If logger is nil the
// default logger is used.
func NewPostgresNoteStore(db store.DBTX, logger *slog.Logger) *PostgresNoteStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNoteStore{
		db:     db,
		logger: logger.With(slog.String("component", "note_store")),
	}
}

var _ store.NoteStore = (*PostgresNoteStore)(nil)

const noteColumns = `id, title, content, user_id, created_at, updated_at`

// Create implements store.NoteStore.
func (s *PostgresNoteStore) Create(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		log.Warn("note validation failed during create",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return err
	}

	query := `
		INSERT INTO notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		note.ID,
		note.Title,
		note.Content,
		toNullUUID(note.UserID),
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create note",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return MapError(err)
	}

	log.Info("note created", slog.String("note_id", note.ID.String()))
	return nil
}

// GetByID implements store.NoteStore.
func (s *PostgresNoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`
	note, err := scanNote(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("note not found", slog.String("note_id", id.String()))
			return nil, store.ErrNoteNotFound
		}
		log.Error("failed to get note",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return nil, MapError(err)
	}

	return note, nil
}

// List implements store.NoteStore.
func (s *PostgresNoteStore) List(ctx context.Context) ([]*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + noteColumns + ` FROM notes ORDER BY created_at DESC, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list notes", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error("failed to scan note row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating note rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("listed notes", slog.Int("count", len(notes)))
	return notes, nil
}

// Update implements store.NoteStore.
func (s *PostgresNoteStore) Update(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE notes
		SET title = $2, content = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, note.ID, note.Title, note.Content, note.UpdatedAt)
	if err != nil {
		log.Error("failed to update note",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrNoteNotFound); err != nil {
		return err
	}

	log.Info("note updated", slog.String("note_id", note.ID.String()))
	return nil
}

// Delete implements store.NoteStore.
func (s *PostgresNoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("note still referenced by flashcards",
				slog.String("note_id", id.String()))
		} else {
			log.Error("failed to delete note",
				slog.String("error", err.Error()),
				slog.String("note_id", id.String()))
		}
		return MapDeleteError(err)
	}

	if err := CheckRowsAffected(result, store.ErrNoteNotFound); err != nil {
		return err
	}

	log.Info("note deleted", slog.String("note_id", id.String()))
	return nil
}

// WithTx implements store.NoteStore.
func (s *PostgresNoteStore) WithTx(tx *sql.Tx) store.NoteStore {
	return &PostgresNoteStore{
		db:     tx,
		logger: s.logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var note domain.Note
	var userID uuid.NullUUID

	if err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&userID,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		return nil, err
	}

	note.UserID = fromNullUUID(userID)
	return &note, nil
}
