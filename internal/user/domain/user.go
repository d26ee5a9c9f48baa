// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradeport/keyvault/internal/errors"
)

// User represents an account that owns credential records.
type User struct {
	ID uuid.UUID
	// Email is the login identifier, stored lowercase.
	Email string
	// PasswordHash is the Argon2id hash of the password. Never serialized.
	PasswordHash string `json:"-"`
	// IsActive controls whether the user may authenticate.
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrEmailTaken indicates a user with the same email already exists.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email already registered")

	// ErrInvalidCredentials indicates the email/password pair did not match.
	// Deliberately identical for unknown email and wrong password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrUserInactive indicates the account is disabled.
	ErrUserInactive = errors.Wrap(errors.ErrForbidden, "user is inactive")
)
