// Package usecase implements business logic for the credential vault.
// It coordinates the credential cipher, repositories, and ownership rules:
// secrets are encrypted before anything touches storage, ownership is checked
// before anything is decrypted.
package usecase

import (
	"context"

	"github.com/google/uuid"

	cryptoDomain "github.com/tradeport/keyvault/internal/crypto/domain"
	"github.com/tradeport/keyvault/internal/exchanges/client"
	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
	vaultDomain "github.com/tradeport/keyvault/internal/vault/domain"
)

// CredentialRepository defines the interface for credential persistence operations.
type CredentialRepository interface {
	Create(ctx context.Context, credential *vaultDomain.CredentialRecord) error
	GetByID(ctx context.Context, credentialID uuid.UUID) (*vaultDomain.CredentialRecord, error)
	GetByUserExchangeName(
		ctx context.Context,
		userID, exchangeID uuid.UUID,
		name string,
	) (*vaultDomain.CredentialRecord, error)
	UpdateCiphertext(
		ctx context.Context,
		credentialID uuid.UUID,
		ciphertext, nonce []byte,
		apiKeyPublicPart string,
	) error
	SetActive(ctx context.Context, credentialID uuid.UUID, isActive bool) error
	Delete(ctx context.Context, credentialID uuid.UUID) error
	ListByUser(
		ctx context.Context,
		userID uuid.UUID,
		offset, limit int,
	) ([]*vaultDomain.CredentialRecord, error)
}

// ExchangeRepository is the slice of exchange persistence the vault needs.
type ExchangeRepository interface {
	GetByID(ctx context.Context, exchangeID uuid.UUID) (*exchangesDomain.Exchange, error)
}

// StoreCredentialInput carries the fields for storing a new credential pair.
type StoreCredentialInput struct {
	UserID     uuid.UUID
	ExchangeID uuid.UUID
	Name       string
	APIKey     string
	SecretKey  string
}

// CredentialUseCase defines the interface for credential vault business logic.
//
// Every operation that takes a userID verifies ownership of the record before
// doing anything else; a mismatch returns ErrNotRecordOwner and in particular
// never reaches decryption.
type CredentialUseCase interface {
	// Store encrypts and persists a new credential pair. The (user, exchange,
	// name) triple must be free; the plaintext pair is never persisted.
	Store(ctx context.Context, input *StoreCredentialInput) (*vaultDomain.CredentialRecord, error)

	// Get returns credential metadata without decrypting the payload.
	Get(ctx context.Context, userID, credentialID uuid.UUID) (*vaultDomain.CredentialRecord, error)

	// Reveal decrypts and returns the credential pair. Works on inactive
	// records; only ownership gates access.
	Reveal(
		ctx context.Context,
		userID, credentialID uuid.UUID,
	) (*vaultDomain.CredentialRecord, cryptoDomain.Credentials, error)

	// Update re-encrypts the record with a new credential pair and a fresh
	// nonce. The stored blob is replaced atomically: a failed update leaves
	// the previous ciphertext intact.
	Update(
		ctx context.Context,
		userID, credentialID uuid.UUID,
		apiKey, secretKey string,
	) (*vaultDomain.CredentialRecord, error)

	// Delete permanently removes the record.
	Delete(ctx context.Context, userID, credentialID uuid.UUID) error

	// SetActive toggles whether the credential may be used to build clients.
	SetActive(
		ctx context.Context,
		userID, credentialID uuid.UUID,
		isActive bool,
	) (*vaultDomain.CredentialRecord, error)

	// List returns the user's credential records without decrypting anything.
	List(
		ctx context.Context,
		userID uuid.UUID,
		offset, limit int,
	) ([]*vaultDomain.CredentialRecord, error)

	// BuildClient decrypts an active credential and constructs the exchange
	// API client for it.
	BuildClient(ctx context.Context, userID, credentialID uuid.UUID) (client.Client, error)
}
