// Package usecase implements authentication business logic.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/tradeport/keyvault/internal/auth/domain"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
)

// TokenRepository defines the persistence operations for tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *authDomain.Token) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)
	Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserAuthenticator verifies passwords and resolves users. Satisfied by the
// user use case.
type UserAuthenticator interface {
	Authenticate(ctx context.Context, email, password string) (*userDomain.User, error)
	Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error)
}

// IssueTokenInput carries the login credentials for token issuance.
type IssueTokenInput struct {
	Email    string
	Password string
}

// TokenUseCase defines the token business operations.
type TokenUseCase interface {
	// Issue verifies the email/password pair and mints a new bearer token.
	// The plain token is only returned once.
	Issue(ctx context.Context, input IssueTokenInput) (*authDomain.IssueTokenOutput, error)

	// Authenticate resolves a token hash to its owning user. Missing,
	// expired, and revoked tokens all return ErrInvalidToken.
	Authenticate(ctx context.Context, tokenHash string) (*userDomain.User, error)

	// Revoke invalidates a token by hash. The caller must own the token.
	Revoke(ctx context.Context, userID uuid.UUID, tokenHash string) error
}
