// Package mocks provides mock implementations for testing vault use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
	vaultDomain "github.com/tradeport/keyvault/internal/vault/domain"
)

// MockCredentialRepository is a mock implementation of CredentialRepository for testing.
type MockCredentialRepository struct {
	mock.Mock
}

// Create mocks the Create method of CredentialRepository.
func (m *MockCredentialRepository) Create(
	ctx context.Context,
	credential *vaultDomain.CredentialRecord,
) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// GetByID mocks the GetByID method of CredentialRepository.
func (m *MockCredentialRepository) GetByID(
	ctx context.Context,
	credentialID uuid.UUID,
) (*vaultDomain.CredentialRecord, error) {
	args := m.Called(ctx, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.CredentialRecord), args.Error(1)
}

// GetByUserExchangeName mocks the GetByUserExchangeName method of CredentialRepository.
func (m *MockCredentialRepository) GetByUserExchangeName(
	ctx context.Context,
	userID, exchangeID uuid.UUID,
	name string,
) (*vaultDomain.CredentialRecord, error) {
	args := m.Called(ctx, userID, exchangeID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.CredentialRecord), args.Error(1)
}

// UpdateCiphertext mocks the UpdateCiphertext method of CredentialRepository.
func (m *MockCredentialRepository) UpdateCiphertext(
	ctx context.Context,
	credentialID uuid.UUID,
	ciphertext, nonce []byte,
	apiKeyPublicPart string,
) error {
	args := m.Called(ctx, credentialID, ciphertext, nonce, apiKeyPublicPart)
	return args.Error(0)
}

// SetActive mocks the SetActive method of CredentialRepository.
func (m *MockCredentialRepository) SetActive(
	ctx context.Context,
	credentialID uuid.UUID,
	isActive bool,
) error {
	args := m.Called(ctx, credentialID, isActive)
	return args.Error(0)
}

// Delete mocks the Delete method of CredentialRepository.
func (m *MockCredentialRepository) Delete(ctx context.Context, credentialID uuid.UUID) error {
	args := m.Called(ctx, credentialID)
	return args.Error(0)
}

// ListByUser mocks the ListByUser method of CredentialRepository.
func (m *MockCredentialRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.CredentialRecord, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.CredentialRecord), args.Error(1)
}

// MockExchangeRepository is a mock implementation of the vault's exchange
// lookup dependency.
type MockExchangeRepository struct {
	mock.Mock
}

// GetByID mocks the GetByID method of ExchangeRepository.
func (m *MockExchangeRepository) GetByID(
	ctx context.Context,
	exchangeID uuid.UUID,
) (*exchangesDomain.Exchange, error) {
	args := m.Called(ctx, exchangeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exchangesDomain.Exchange), args.Error(1)
}
