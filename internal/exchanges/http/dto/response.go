package dto

import (
	"time"

	"github.com/google/uuid"

	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
)

// ExchangeResponse is the external representation of an exchange venue.
type ExchangeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	BaseURL     string    `json:"base_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExchangeListResponse wraps a page of exchange venues.
type ExchangeListResponse struct {
	Exchanges []ExchangeResponse `json:"exchanges"`
	Offset    int                `json:"offset"`
	Limit     int                `json:"limit"`
}

// ToExchangeResponse converts a domain exchange to its external representation.
func ToExchangeResponse(exchange *exchangesDomain.Exchange) ExchangeResponse {
	return ExchangeResponse{
		ID:          exchange.ID,
		Name:        exchange.Name,
		DisplayName: exchange.DisplayName,
		BaseURL:     exchange.BaseURL,
		IsActive:    exchange.IsActive,
		CreatedAt:   exchange.CreatedAt,
	}
}

// ToExchangeListResponse converts a page of exchanges.
func ToExchangeListResponse(exchanges []*exchangesDomain.Exchange, offset, limit int) ExchangeListResponse {
	items := make([]ExchangeResponse, 0, len(exchanges))
	for _, exchange := range exchanges {
		items = append(items, ToExchangeResponse(exchange))
	}
	return ExchangeListResponse{
		Exchanges: items,
		Offset:    offset,
		Limit:     limit,
	}
}
