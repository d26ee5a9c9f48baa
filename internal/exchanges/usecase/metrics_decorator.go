package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
	"github.com/tradeport/keyvault/internal/metrics"
)

// exchangeUseCaseWithMetrics decorates ExchangeUseCase with metrics instrumentation.
type exchangeUseCaseWithMetrics struct {
	next    ExchangeUseCase
	metrics metrics.BusinessMetrics
}

// NewExchangeUseCaseWithMetrics wraps an ExchangeUseCase with metrics recording.
func NewExchangeUseCaseWithMetrics(useCase ExchangeUseCase, m metrics.BusinessMetrics) ExchangeUseCase {
	return &exchangeUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (e *exchangeUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "exchanges", operation, status)
	e.metrics.RecordDuration(ctx, "exchanges", operation, time.Since(start), status)
}

// Create records metrics for exchange registration.
func (e *exchangeUseCaseWithMetrics) Create(
	ctx context.Context,
	input *CreateExchangeInput,
) (*exchangesDomain.Exchange, error) {
	start := time.Now()
	exchange, err := e.next.Create(ctx, input)
	e.record(ctx, "exchange_create", start, err)
	return exchange, err
}

// Get records metrics for exchange retrieval.
func (e *exchangeUseCaseWithMetrics) Get(
	ctx context.Context,
	exchangeID uuid.UUID,
) (*exchangesDomain.Exchange, error) {
	start := time.Now()
	exchange, err := e.next.Get(ctx, exchangeID)
	e.record(ctx, "exchange_get", start, err)
	return exchange, err
}

// GetByName records metrics for exchange lookup by name.
func (e *exchangeUseCaseWithMetrics) GetByName(
	ctx context.Context,
	name string,
) (*exchangesDomain.Exchange, error) {
	start := time.Now()
	exchange, err := e.next.GetByName(ctx, name)
	e.record(ctx, "exchange_get_by_name", start, err)
	return exchange, err
}

// List records metrics for exchange listing.
func (e *exchangeUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*exchangesDomain.Exchange, error) {
	start := time.Now()
	exchanges, err := e.next.List(ctx, offset, limit)
	e.record(ctx, "exchange_list", start, err)
	return exchanges, err
}
