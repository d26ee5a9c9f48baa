package dto

import (
	"time"

	"github.com/google/uuid"
)

// CredentialResponse is the external representation of a credential record.
// Ciphertext and nonce never appear here; only the public key fragment is
// exposed for identification.
type CredentialResponse struct {
	ID               uuid.UUID `json:"id"`
	ExchangeID       uuid.UUID `json:"exchange_id"`
	Name             string    `json:"name"`
	APIKeyPublicPart string    `json:"api_key_public_part"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RevealCredentialResponse carries the decrypted credential pair alongside
// the record metadata.
type RevealCredentialResponse struct {
	Credential CredentialResponse `json:"credential"`
	APIKey     string             `json:"api_key"`
	SecretKey  string             `json:"secret_key"`
}

// CredentialListResponse wraps a page of credential records.
type CredentialListResponse struct {
	Credentials []CredentialResponse `json:"credentials"`
	Offset      int                  `json:"offset"`
	Limit       int                  `json:"limit"`
}
