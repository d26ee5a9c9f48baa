// Package domain defines authentication domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradeport/keyvault/internal/errors"
)

// Token is a server-side record of an issued API token. Only the SHA-256
// hash of the token is stored; the plain token is shown once at issuance.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	UserID    uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IssueTokenOutput carries the plain token returned to the caller at issuance.
type IssueTokenOutput struct {
	PlainToken string
	ExpiresAt  time.Time
}

// Domain-specific errors for authentication operations.
var (
	// ErrTokenNotFound indicates no token matches the given hash.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrInvalidToken covers missing, expired, and revoked tokens.
	// Deliberately a single error to avoid leaking token state.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired token")
)
