package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tradeport/keyvault/internal/errors"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
	"github.com/tradeport/keyvault/internal/user/usecase/mocks"
)

func newUserFixture(t *testing.T) (*UserUseCaseService, *mocks.MockUserRepository) {
	t.Helper()

	userRepo := &mocks.MockUserRepository{}
	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	return useCase, userRepo
}

func TestUserUseCaseRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers user with hashed password", func(t *testing.T) {
		useCase, userRepo := newUserFixture(t)

		userRepo.On("GetByEmail", ctx, "trader@example.com").Return(nil, apperrors.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := useCase.Register(ctx, RegisterUserInput{
			Email:    "  Trader@Example.COM ",
			Password: "Str0ng-pass!",
		})
		require.NoError(t, err)

		assert.Equal(t, "trader@example.com", user.Email)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.NotContains(t, user.PasswordHash, "Str0ng-pass!")

		valid, err := useCase.passwordHasher.Verify([]byte("Str0ng-pass!"), user.PasswordHash)
		require.NoError(t, err)
		assert.True(t, valid)

		userRepo.AssertExpectations(t)
	})

	t.Run("rejects weak password before touching the repository", func(t *testing.T) {
		useCase, userRepo := newUserFixture(t)

		_, err := useCase.Register(ctx, RegisterUserInput{
			Email:    "trader@example.com",
			Password: "alllowercase",
		})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		useCase, userRepo := newUserFixture(t)

		_, err := useCase.Register(ctx, RegisterUserInput{
			Email:    "not-an-email",
			Password: "Str0ng-pass!",
		})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		useCase, userRepo := newUserFixture(t)

		existing := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "trader@example.com"}
		userRepo.On("GetByEmail", ctx, "trader@example.com").Return(existing, nil)

		_, err := useCase.Register(ctx, RegisterUserInput{
			Email:    "trader@example.com",
			Password: "Str0ng-pass!",
		})
		assert.ErrorIs(t, err, userDomain.ErrEmailTaken)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserUseCaseAuthenticate(t *testing.T) {
	ctx := context.Background()

	registeredUser := func(t *testing.T, useCase *UserUseCaseService, active bool) *userDomain.User {
		t.Helper()
		hash, err := useCase.passwordHasher.Hash([]byte("Str0ng-pass!"))
		require.NoError(t, err)
		return &userDomain.User{
			ID:           uuid.Must(uuid.NewV7()),
			Email:        "trader@example.com",
			PasswordHash: hash,
			IsActive:     active,
		}
	}

	t.Run("returns user for matching credentials", func(t *testing.T) {
		useCase, userRepo := newUserFixture(t)
		user := registeredUser(t, useCase, true)
		userRepo.On("GetByEmail", ctx, "trader@example.com").Return(user, nil)

		got, err := useCase.Authenticate(ctx, "Trader@Example.com", "Str0ng-pass!")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		useCase, userRepo := newUserFixture(t)
		user := registeredUser(t, useCase, true)
		userRepo.On("GetByEmail", ctx, "trader@example.com").Return(user, nil)

		_, err := useCase.Authenticate(ctx, "trader@example.com", "Wr0ng-pass!")
		assert.ErrorIs(t, err, userDomain.ErrInvalidCredentials)
	})

	t.Run("unknown email returns the same error as wrong password", func(t *testing.T) {
		useCase, userRepo := newUserFixture(t)
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound)

		_, err := useCase.Authenticate(ctx, "ghost@example.com", "Str0ng-pass!")
		assert.ErrorIs(t, err, userDomain.ErrInvalidCredentials)
	})

	t.Run("rejects inactive user even with valid password", func(t *testing.T) {
		useCase, userRepo := newUserFixture(t)
		user := registeredUser(t, useCase, false)
		userRepo.On("GetByEmail", ctx, "trader@example.com").Return(user, nil)

		_, err := useCase.Authenticate(ctx, "trader@example.com", "Str0ng-pass!")
		assert.ErrorIs(t, err, userDomain.ErrUserInactive)
	})
}

func TestUserUseCaseGet(t *testing.T) {
	ctx := context.Background()

	t.Run("returns user by id", func(t *testing.T) {
		useCase, userRepo := newUserFixture(t)
		user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "trader@example.com"}
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		got, err := useCase.Get(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("maps missing user to domain error", func(t *testing.T) {
		useCase, userRepo := newUserFixture(t)
		unknownID := uuid.Must(uuid.NewV7())
		userRepo.On("GetByID", ctx, unknownID).Return(nil, apperrors.ErrNotFound)

		_, err := useCase.Get(ctx, unknownID)
		assert.ErrorIs(t, err, userDomain.ErrUserNotFound)
	})

	t.Run("get by email normalizes input", func(t *testing.T) {
		useCase, userRepo := newUserFixture(t)
		user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "trader@example.com"}
		userRepo.On("GetByEmail", ctx, "trader@example.com").Return(user, nil)

		got, err := useCase.GetByEmail(ctx, " Trader@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})
}
