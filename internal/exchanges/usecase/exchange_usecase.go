package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/tradeport/keyvault/internal/errors"
	"github.com/tradeport/keyvault/internal/exchanges/client"
	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
)

// exchangeUseCase implements the ExchangeUseCase interface.
type exchangeUseCase struct {
	exchangeRepo ExchangeRepository
}

// Create registers an exchange after checking that a client implementation
// exists and that the name is not already registered.
func (e *exchangeUseCase) Create(
	ctx context.Context,
	input *CreateExchangeInput,
) (*exchangesDomain.Exchange, error) {
	name := strings.ToLower(input.Name)

	if !client.IsSupported(name) {
		return nil, exchangesDomain.ErrUnsupportedExchange
	}

	existing, err := e.exchangeRepo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, exchangesDomain.ErrExchangeNameTaken
	}

	exchange := &exchangesDomain.Exchange{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        name,
		DisplayName: input.DisplayName,
		BaseURL:     input.BaseURL,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := e.exchangeRepo.Create(ctx, exchange); err != nil {
		return nil, err
	}

	return exchange, nil
}

// Get retrieves an exchange by its identifier.
func (e *exchangeUseCase) Get(
	ctx context.Context,
	exchangeID uuid.UUID,
) (*exchangesDomain.Exchange, error) {
	exchange, err := e.exchangeRepo.GetByID(ctx, exchangeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, exchangesDomain.ErrExchangeNotFound
		}
		return nil, err
	}
	return exchange, nil
}

// GetByName retrieves an exchange by its canonical name.
func (e *exchangeUseCase) GetByName(
	ctx context.Context,
	name string,
) (*exchangesDomain.Exchange, error) {
	exchange, err := e.exchangeRepo.GetByName(ctx, strings.ToLower(name))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, exchangesDomain.ErrExchangeNotFound
		}
		return nil, err
	}
	return exchange, nil
}

// List retrieves exchanges ordered by name with pagination.
func (e *exchangeUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*exchangesDomain.Exchange, error) {
	return e.exchangeRepo.List(ctx, offset, limit)
}

// NewExchangeUseCase creates a new exchange use case instance.
func NewExchangeUseCase(exchangeRepo ExchangeRepository) ExchangeUseCase {
	return &exchangeUseCase{exchangeRepo: exchangeRepo}
}
