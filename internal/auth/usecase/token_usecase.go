package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/tradeport/keyvault/internal/auth/domain"
	authService "github.com/tradeport/keyvault/internal/auth/service"
	"github.com/tradeport/keyvault/internal/config"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
)

// tokenUseCase implements TokenUseCase.
type tokenUseCase struct {
	config       *config.Config
	users        UserAuthenticator
	tokenRepo    TokenRepository
	tokenService authService.TokenService
}

// Issue verifies the credentials and mints a new token with expiration from config.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	input IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	user, err := t.users.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	token := &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		UserID:    user.ID,
		ExpiresAt: now.Add(t.config.AuthTokenExpiration),
		RevokedAt: nil,
		CreatedAt: now,
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		PlainToken: plainToken,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

// Authenticate resolves a token hash to the owning user.
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*userDomain.User, error) {
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	if token.ExpiresAt.Before(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidToken
	}
	if token.RevokedAt != nil {
		return nil, authDomain.ErrInvalidToken
	}

	user, err := t.users.Get(ctx, token.UserID)
	if err != nil {
		// Should not happen with the foreign key in place, but keep the
		// failure mode generic.
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, userDomain.ErrUserInactive
	}

	return user, nil
}

// Revoke invalidates the caller's own token.
func (t *tokenUseCase) Revoke(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return authDomain.ErrInvalidToken
		}
		return err
	}

	if token.UserID != userID {
		return authDomain.ErrInvalidToken
	}

	return t.tokenRepo.Revoke(ctx, token.ID, time.Now().UTC())
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	cfg *config.Config,
	users UserAuthenticator,
	tokenRepo TokenRepository,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		config:       cfg,
		users:        users,
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
	}
}
