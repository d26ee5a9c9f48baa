// Package mocks provides mock implementations for testing vault HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/tradeport/keyvault/internal/crypto/domain"
	"github.com/tradeport/keyvault/internal/exchanges/client"
	vaultDomain "github.com/tradeport/keyvault/internal/vault/domain"
	"github.com/tradeport/keyvault/internal/vault/usecase"
)

// MockCredentialUseCase is a mock implementation of CredentialUseCase for testing.
type MockCredentialUseCase struct {
	mock.Mock
}

// Store mocks the Store method of CredentialUseCase.
func (m *MockCredentialUseCase) Store(
	ctx context.Context,
	input *usecase.StoreCredentialInput,
) (*vaultDomain.CredentialRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.CredentialRecord), args.Error(1)
}

// Get mocks the Get method of CredentialUseCase.
func (m *MockCredentialUseCase) Get(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (*vaultDomain.CredentialRecord, error) {
	args := m.Called(ctx, userID, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.CredentialRecord), args.Error(1)
}

// Reveal mocks the Reveal method of CredentialUseCase.
func (m *MockCredentialUseCase) Reveal(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (*vaultDomain.CredentialRecord, cryptoDomain.Credentials, error) {
	args := m.Called(ctx, userID, credentialID)
	if args.Get(0) == nil {
		return nil, cryptoDomain.Credentials{}, args.Error(2)
	}
	return args.Get(0).(*vaultDomain.CredentialRecord),
		args.Get(1).(cryptoDomain.Credentials),
		args.Error(2)
}

// Update mocks the Update method of CredentialUseCase.
func (m *MockCredentialUseCase) Update(
	ctx context.Context,
	userID, credentialID uuid.UUID,
	apiKey, secretKey string,
) (*vaultDomain.CredentialRecord, error) {
	args := m.Called(ctx, userID, credentialID, apiKey, secretKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.CredentialRecord), args.Error(1)
}

// Delete mocks the Delete method of CredentialUseCase.
func (m *MockCredentialUseCase) Delete(ctx context.Context, userID, credentialID uuid.UUID) error {
	args := m.Called(ctx, userID, credentialID)
	return args.Error(0)
}

// SetActive mocks the SetActive method of CredentialUseCase.
func (m *MockCredentialUseCase) SetActive(
	ctx context.Context,
	userID, credentialID uuid.UUID,
	isActive bool,
) (*vaultDomain.CredentialRecord, error) {
	args := m.Called(ctx, userID, credentialID, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.CredentialRecord), args.Error(1)
}

// List mocks the List method of CredentialUseCase.
func (m *MockCredentialUseCase) List(
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

// BuildClient mocks the BuildClient method of CredentialUseCase.
func (m *MockCredentialUseCase) BuildClient(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (client.Client, error) {
	args := m.Called(ctx, userID, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(client.Client), args.Error(1)
}
