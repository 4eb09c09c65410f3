package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/platform/logger"
	"github.com/r4yfon/flashcarder/internal/store"
)

// PostgresUserStore implements store.UserStore.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a user store on db.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// EnsureByUsername implements store.UserStore. The insert is a no-op when
// the username exists, so concurrent callers converge on the same row.
func (s *PostgresUserStore) EnsureByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	candidate, err := domain.NewUser(username)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`, candidate.ID, candidate.Username, candidate.CreatedAt)
	if err != nil {
		log.Error("failed to ensure user",
			slog.String("error", err.Error()),
			slog.String("username", candidate.Username))
		return nil, MapError(err)
	}

	user, err := s.getOne(ctx, `SELECT id, username, created_at FROM users WHERE username = $1`,
		strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	log.Debug("user ensured",
		slog.String("user_id", user.ID.String()),
		slog.Bool("created", user.ID == candidate.ID))
	return user, nil
}

// GetByID implements store.UserStore.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, `SELECT id, username, created_at FROM users WHERE id = $1`, id)
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return &user, nil
}
