package domain

import (
	"github.com/tradeport/keyvault/internal/errors"
)

// Exchange error definitions.
var (
	// ErrExchangeNotFound indicates no exchange exists for the given identifier.
	ErrExchangeNotFound = errors.Wrap(errors.ErrNotFound, "exchange not found")

	// ErrExchangeNameTaken indicates an exchange with the same name is already registered.
	ErrExchangeNameTaken = errors.Wrap(errors.ErrConflict, "exchange name already registered")

	// ErrUnsupportedExchange indicates no client implementation exists for the
	// exchange name. The supported set is fixed at compile time.
	ErrUnsupportedExchange = errors.Wrap(errors.ErrInvalidInput, "unsupported exchange")
)
