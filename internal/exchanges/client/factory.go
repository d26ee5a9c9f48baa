package client

import (
	"fmt"
	"strings"

	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
)

// SupportedExchanges lists the venues with a client implementation.
//
// The set is closed: adding a venue means adding a client type and a factory
// case, not a registry entry.
var SupportedExchanges = []string{
	"binance",
	"coinbase",
	"kraken",
	"bybit",
	"kucoin",
}

// NewClient builds an exchange client for the named venue.
//
// Matching is case-insensitive. Returns ErrUnsupportedExchange for any name
// outside SupportedExchanges; the credential pair is never partially applied
// on failure.
func NewClient(name, apiKey, secretKey, baseURL string) (Client, error) {
	switch strings.ToLower(name) {
	case "binance":
		return NewBinance(apiKey, secretKey, baseURL), nil
	case "coinbase":
		return NewCoinbase(apiKey, secretKey, baseURL), nil
	case "kraken":
		return NewKraken(apiKey, secretKey, baseURL)
	case "bybit":
		return NewBybit(apiKey, secretKey, baseURL), nil
	case "kucoin":
		return NewKuCoin(apiKey, secretKey, baseURL), nil
	default:
		return nil, fmt.Errorf("%w: %s", exchangesDomain.ErrUnsupportedExchange, name)
	}
}

// IsSupported reports whether a client implementation exists for the name.
func IsSupported(name string) bool {
	name = strings.ToLower(name)
	for _, supported := range SupportedExchanges {
		if name == supported {
			return true
		}
	}
	return false
}
