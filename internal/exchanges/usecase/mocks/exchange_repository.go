// Package mocks provides mock implementations for testing exchange use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
)

// MockExchangeRepository is a mock implementation of ExchangeRepository for testing.
type MockExchangeRepository struct {
	mock.Mock
}

// Create mocks the Create method of ExchangeRepository.
func (m *MockExchangeRepository) Create(ctx context.Context, exchange *exchangesDomain.Exchange) error {
	args := m.Called(ctx, exchange)
	return args.Error(0)
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

// GetByName mocks the GetByName method of ExchangeRepository.
func (m *MockExchangeRepository) GetByName(
	ctx context.Context,
	name string,
) (*exchangesDomain.Exchange, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exchangesDomain.Exchange), args.Error(1)
}

// List mocks the List method of ExchangeRepository.
func (m *MockExchangeRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*exchangesDomain.Exchange, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*exchangesDomain.Exchange), args.Error(1)
}
