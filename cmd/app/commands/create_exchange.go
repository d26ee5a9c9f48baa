package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
	exchangesUseCase "github.com/tradeport/keyvault/internal/exchanges/usecase"
)

// RunCreateExchange registers a trading venue so credentials can be stored
// against it. The name must belong to the closed set of venues with a client
// implementation. Outputs the exchange in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateExchange(
	ctx context.Context,
	exchanges exchangesUseCase.ExchangeUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	displayName string,
	baseURL string,
	format string,
) error {
	logger.Info("creating new exchange", slog.String("name", name))

	exchange, err := exchanges.Create(ctx, &exchangesUseCase.CreateExchangeInput{
		Name:        name,
		DisplayName: displayName,
		BaseURL:     baseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create exchange: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputExchangeJSON(exchange, writer)
	} else {
		outputExchangeText(exchange, writer)
	}

	logger.Info("exchange created successfully",
		slog.String("exchange_id", exchange.ID.String()),
		slog.String("name", exchange.Name),
	)

	return nil
}

// outputExchangeText outputs the result in human-readable text format.
func outputExchangeText(exchange *exchangesDomain.Exchange, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nExchange created successfully!")
	_, _ = fmt.Fprintf(writer, "Exchange ID: %s\n", exchange.ID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", exchange.Name)
	_, _ = fmt.Fprintf(writer, "Display Name: %s\n", exchange.DisplayName)
	if exchange.BaseURL != "" {
		_, _ = fmt.Fprintf(writer, "Base URL: %s\n", exchange.BaseURL)
	}
}

// outputExchangeJSON outputs the result in JSON format for machine consumption.
func outputExchangeJSON(exchange *exchangesDomain.Exchange, writer io.Writer) {
	result := map[string]string{
		"exchange_id":  exchange.ID.String(),
		"name":         exchange.Name,
		"display_name": exchange.DisplayName,
		"base_url":     exchange.BaseURL,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
