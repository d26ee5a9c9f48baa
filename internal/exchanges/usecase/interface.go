// Package usecase implements business logic for exchange management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
)

// ExchangeRepository defines the interface for exchange persistence operations.
type ExchangeRepository interface {
	Create(ctx context.Context, exchange *exchangesDomain.Exchange) error
	GetByID(ctx context.Context, exchangeID uuid.UUID) (*exchangesDomain.Exchange, error)
	GetByName(ctx context.Context, name string) (*exchangesDomain.Exchange, error)
	List(ctx context.Context, offset, limit int) ([]*exchangesDomain.Exchange, error)
}

// CreateExchangeInput carries the fields for registering an exchange.
type CreateExchangeInput struct {
	Name        string
	DisplayName string
	BaseURL     string
}

// ExchangeUseCase defines the interface for exchange management business logic.
type ExchangeUseCase interface {
	// Create registers an exchange. The name must belong to the closed set of
	// venues with a client implementation.
	Create(ctx context.Context, input *CreateExchangeInput) (*exchangesDomain.Exchange, error)
	Get(ctx context.Context, exchangeID uuid.UUID) (*exchangesDomain.Exchange, error)
	GetByName(ctx context.Context, name string) (*exchangesDomain.Exchange, error)
	List(ctx context.Context, offset, limit int) ([]*exchangesDomain.Exchange, error)
}
