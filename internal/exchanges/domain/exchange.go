// Package domain defines the core domain models for exchange management.
// An exchange row names a trading venue credentials can be stored for; the
// set of venues that can actually serve API calls is fixed at compile time
// by the client factory.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Exchange represents a trading venue known to the vault.
type Exchange struct {
	// ID is the unique identifier for this exchange.
	ID uuid.UUID
	// Name is the canonical lowercase identifier (e.g. "binance", "kraken").
	Name string
	// DisplayName is the human-readable name shown in listings.
	DisplayName string
	// BaseURL is the REST API endpoint clients are built against.
	BaseURL string
	// IsActive controls whether new credentials may target this exchange.
	IsActive bool
	// CreatedAt is the UTC timestamp when this exchange was registered.
	CreatedAt time.Time
}
