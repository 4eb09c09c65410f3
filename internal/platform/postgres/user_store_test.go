package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreEnsureByUsername(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	existing := uuid.New()
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (username) DO NOTHING")).
		WithArgs(sqlmock.AnyArg(), "demo_user", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("demo_user").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "created_at"}).
			AddRow(existing.String(), "demo_user", now))

	user, err := s.EnsureByUsername(context.Background(), " demo_user ")
	require.NoError(t, err)
	assert.Equal(t, existing, user.ID)
	assert.Equal(t, "demo_user", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreEnsureByUsernameBlank(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	_, err := s.EnsureByUsername(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreGetByIDMissing(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
