package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
	exchangeMocks "github.com/tradeport/keyvault/internal/exchanges/http/mocks"
	exchangesUseCase "github.com/tradeport/keyvault/internal/exchanges/usecase"
)

func TestRunCreateExchange(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	exchange := &exchangesDomain.Exchange{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        "binance",
		DisplayName: "Binance",
		BaseURL:     "https://api.binance.com",
		IsActive:    true,
	}

	t.Run("text-output", func(t *testing.T) {
		exchanges := &exchangeMocks.MockExchangeUseCase{}
		exchanges.On("Create", ctx, &exchangesUseCase.CreateExchangeInput{
			Name:        "binance",
			DisplayName: "Binance",
			BaseURL:     "https://api.binance.com",
		}).Return(exchange, nil)

		var out bytes.Buffer
		err := RunCreateExchange(
			ctx, exchanges, logger, &out,
			"binance", "Binance", "https://api.binance.com", "text",
		)
		require.NoError(t, err)
		require.Contains(t, out.String(), exchange.ID.String())
		require.Contains(t, out.String(), "binance")

		exchanges.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		exchanges := &exchangeMocks.MockExchangeUseCase{}
		exchanges.On("Create", ctx, mock.Anything).Return(exchange, nil)

		var out bytes.Buffer
		err := RunCreateExchange(ctx, exchanges, logger, &out, "binance", "Binance", "", "json")
		require.NoError(t, err)
		require.Contains(t, out.String(), `"exchange_id"`)
	})

	t.Run("unsupported-venue", func(t *testing.T) {
		exchanges := &exchangeMocks.MockExchangeUseCase{}
		exchanges.On("Create", ctx, mock.Anything).
			Return(nil, exchangesDomain.ErrUnsupportedExchange)

		err := RunCreateExchange(ctx, exchanges, logger, &bytes.Buffer{}, "mtgox", "Mt. Gox", "", "text")
		require.Error(t, err)
		require.ErrorIs(t, err, exchangesDomain.ErrUnsupportedExchange)
	})
}
