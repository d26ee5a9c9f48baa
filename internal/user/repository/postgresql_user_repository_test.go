package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tradeport/keyvault/internal/errors"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
)

var userColumns = []string{"id", "email", "password_hash", "is_active", "created_at", "updated_at"}

func newTestUser() *userDomain.User {
	now := time.Now().UTC()
	return &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        "trader@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=2,p=1$c2FsdA$aGFzaA",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestPostgreSQLUserRepositoryCreate(t *testing.T) {
	t.Run("inserts the user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		user := newTestUser()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(
				user.ID, user.Email, user.PasswordHash,
				user.IsActive, user.CreatedAt, user.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLUserRepository(db)
		require.NoError(t, repo.Create(context.Background(), user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps unique violations to the email-taken error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewPostgreSQLUserRepository(db)
		err = repo.Create(context.Background(), newTestUser())
		assert.ErrorIs(t, err, userDomain.ErrEmailTaken)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPostgreSQLUserRepositoryGetByID(t *testing.T) {
	t.Run("returns the user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		user := newTestUser()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs(user.ID).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				user.ID.String(), user.Email, user.PasswordHash,
				user.IsActive, user.CreatedAt, user.UpdatedAt,
			))

		repo := NewPostgreSQLUserRepository(db)
		got, err := repo.GetByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows(userColumns))

		repo := NewPostgreSQLUserRepository(db)
		_, err = repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLUserRepositoryGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	user := newTestUser()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs(user.Email).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			user.ID.String(), user.Email, user.PasswordHash,
			user.IsActive, user.CreatedAt, user.UpdatedAt,
		))

	repo := NewPostgreSQLUserRepository(db)
	got, err := repo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}
