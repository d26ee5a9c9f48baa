// Package usecase implements user business logic.
package usecase

import (
	"context"

	"github.com/google/uuid"

	userDomain "github.com/tradeport/keyvault/internal/user/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *userDomain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*userDomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// RegisterUserInput carries the data required to register a user.
type RegisterUserInput struct {
	Email    string
	Password string
}

// UserUseCase defines the user business operations.
type UserUseCase interface {
	// Register creates a new user with a hashed password. The email is
	// normalized (trimmed, lowercased) before the uniqueness check.
	Register(ctx context.Context, input RegisterUserInput) (*userDomain.User, error)

	// Authenticate verifies an email/password pair and returns the user.
	// Unknown email and wrong password both return ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*userDomain.User, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error)

	// GetByEmail retrieves a user by normalized email.
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}
