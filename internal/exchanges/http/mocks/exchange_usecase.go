// Package mocks provides mock implementations for testing exchange HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
	"github.com/tradeport/keyvault/internal/exchanges/usecase"
)

// MockExchangeUseCase is a mock implementation of ExchangeUseCase for testing.
type MockExchangeUseCase struct {
	mock.Mock
}

// Create mocks the Create method of ExchangeUseCase.
func (m *MockExchangeUseCase) Create(
	ctx context.Context,
	input *usecase.CreateExchangeInput,
) (*exchangesDomain.Exchange, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exchangesDomain.Exchange), args.Error(1)
}

// Get mocks the Get method of ExchangeUseCase.
func (m *MockExchangeUseCase) Get(
	ctx context.Context,
	exchangeID uuid.UUID,
) (*exchangesDomain.Exchange, error) {
	args := m.Called(ctx, exchangeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exchangesDomain.Exchange), args.Error(1)
}

// GetByName mocks the GetByName method of ExchangeUseCase.
func (m *MockExchangeUseCase) GetByName(
	ctx context.Context,
	name string,
) (*exchangesDomain.Exchange, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exchangesDomain.Exchange), args.Error(1)
}

// List mocks the List method of ExchangeUseCase.
func (m *MockExchangeUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*exchangesDomain.Exchange, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*exchangesDomain.Exchange), args.Error(1)
}
