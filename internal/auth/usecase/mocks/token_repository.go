// Package mocks provides mock implementations for testing auth use cases.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/tradeport/keyvault/internal/auth/domain"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
)

// MockTokenRepository is a mock implementation of TokenRepository for testing.
type MockTokenRepository struct {
	mock.Mock
}

// Create mocks the Create method of TokenRepository.
func (m *MockTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// GetByTokenHash mocks the GetByTokenHash method of TokenRepository.
func (m *MockTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Token, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}

// Revoke mocks the Revoke method of TokenRepository.
func (m *MockTokenRepository) Revoke(
	ctx context.Context,
	tokenID uuid.UUID,
	revokedAt time.Time,
) error {
	args := m.Called(ctx, tokenID, revokedAt)
	return args.Error(0)
}

// DeleteExpired mocks the DeleteExpired method of TokenRepository.
func (m *MockTokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserAuthenticator is a mock implementation of UserAuthenticator for testing.
type MockUserAuthenticator struct {
	mock.Mock
}

// Authenticate mocks the Authenticate method of UserAuthenticator.
func (m *MockUserAuthenticator) Authenticate(
	ctx context.Context,
	email, password string,
) (*userDomain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// Get mocks the Get method of UserAuthenticator.
func (m *MockUserAuthenticator) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*userDomain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}
