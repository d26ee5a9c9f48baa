package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/tradeport/keyvault/internal/crypto/domain"
	cryptoService "github.com/tradeport/keyvault/internal/crypto/service"
	"github.com/tradeport/keyvault/internal/database"
	apperrors "github.com/tradeport/keyvault/internal/errors"
	"github.com/tradeport/keyvault/internal/exchanges/client"
	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
	vaultDomain "github.com/tradeport/keyvault/internal/vault/domain"
)

// credentialUseCase implements the CredentialUseCase interface.
type credentialUseCase struct {
	txManager      database.TxManager
	credentialRepo CredentialRepository
	exchangeRepo   ExchangeRepository
	cipher         cryptoService.CredentialCipher
}

// Store encrypts and persists a new credential pair.
func (c *credentialUseCase) Store(
	ctx context.Context,
	input *StoreCredentialInput,
) (*vaultDomain.CredentialRecord, error) {
	exchange, err := c.exchangeRepo.GetByID(ctx, input.ExchangeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, exchangesDomain.ErrExchangeNotFound
		}
		return nil, err
	}
	if !exchange.IsActive {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "exchange is not accepting new credentials")
	}

	// Name collision is checked before any encryption work; the database
	// unique constraint remains the ultimate guarantee under concurrency.
	existing, err := c.credentialRepo.GetByUserExchangeName(
		ctx, input.UserID, input.ExchangeID, input.Name,
	)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, vaultDomain.ErrCredentialNameTaken
	}

	ciphertext, nonce, err := c.cipher.Encrypt(cryptoDomain.Credentials{
		APIKey:    input.APIKey,
		SecretKey: input.SecretKey,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	credential := &vaultDomain.CredentialRecord{
		ID:               uuid.Must(uuid.NewV7()),
		UserID:           input.UserID,
		ExchangeID:       input.ExchangeID,
		Name:             input.Name,
		APIKeyPublicPart: input.APIKey,
		Ciphertext:       ciphertext,
		Nonce:            nonce,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := c.credentialRepo.Create(ctx, credential); err != nil {
		return nil, err
	}

	return credential, nil
}

// getOwned loads a record and verifies the requesting user owns it.
func (c *credentialUseCase) getOwned(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (*vaultDomain.CredentialRecord, error) {
	credential, err := c.credentialRepo.GetByID(ctx, credentialID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, vaultDomain.ErrCredentialNotFound
		}
		return nil, err
	}

	if credential.UserID != userID {
		return nil, vaultDomain.ErrNotRecordOwner
	}

	return credential, nil
}

// Get returns credential metadata without decrypting the payload.
func (c *credentialUseCase) Get(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (*vaultDomain.CredentialRecord, error) {
	return c.getOwned(ctx, userID, credentialID)
}

// Reveal decrypts and returns the credential pair.
func (c *credentialUseCase) Reveal(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (*vaultDomain.CredentialRecord, cryptoDomain.Credentials, error) {
	credential, err := c.getOwned(ctx, userID, credentialID)
	if err != nil {
		return nil, cryptoDomain.Credentials{}, err
	}

	credentials, err := c.cipher.Decrypt(credential.Ciphertext, credential.Nonce)
	if err != nil {
		return nil, cryptoDomain.Credentials{}, err
	}

	return credential, credentials, nil
}

// Update re-encrypts the record with a new credential pair and a fresh nonce.
func (c *credentialUseCase) Update(
	ctx context.Context,
	userID, credentialID uuid.UUID,
	apiKey, secretKey string,
) (*vaultDomain.CredentialRecord, error) {
	credential, err := c.getOwned(ctx, userID, credentialID)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, err := c.cipher.Encrypt(cryptoDomain.Credentials{
		APIKey:    apiKey,
		SecretKey: secretKey,
	})
	if err != nil {
		return nil, err
	}

	publicPart := apiKey

	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return c.credentialRepo.UpdateCiphertext(txCtx, credentialID, ciphertext, nonce, publicPart)
	})
	if err != nil {
		return nil, err
	}

	credential.Ciphertext = ciphertext
	credential.Nonce = nonce
	credential.APIKeyPublicPart = publicPart
	credential.UpdatedAt = time.Now().UTC()

	return credential, nil
}

// Delete permanently removes the record.
func (c *credentialUseCase) Delete(ctx context.Context, userID, credentialID uuid.UUID) error {
	if _, err := c.getOwned(ctx, userID, credentialID); err != nil {
		return err
	}

	return c.credentialRepo.Delete(ctx, credentialID)
}

// SetActive toggles whether the credential may be used to build clients.
func (c *credentialUseCase) SetActive(
	ctx context.Context,
	userID, credentialID uuid.UUID,
	isActive bool,
) (*vaultDomain.CredentialRecord, error) {
	credential, err := c.getOwned(ctx, userID, credentialID)
	if err != nil {
		return nil, err
	}

	if err := c.credentialRepo.SetActive(ctx, credentialID, isActive); err != nil {
		return nil, err
	}

	credential.IsActive = isActive
	credential.UpdatedAt = time.Now().UTC()

	return credential, nil
}

// List returns the user's credential records without decrypting anything.
func (c *credentialUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.CredentialRecord, error) {
	return c.credentialRepo.ListByUser(ctx, userID, offset, limit)
}

// BuildClient decrypts an active credential and constructs the exchange API
// client for it.
func (c *credentialUseCase) BuildClient(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (client.Client, error) {
	credential, err := c.getOwned(ctx, userID, credentialID)
	if err != nil {
		return nil, err
	}

	if !credential.IsActive {
		return nil, vaultDomain.ErrCredentialInactive
	}

	exchange, err := c.exchangeRepo.GetByID(ctx, credential.ExchangeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, exchangesDomain.ErrExchangeNotFound
		}
		return nil, err
	}

	credentials, err := c.cipher.Decrypt(credential.Ciphertext, credential.Nonce)
	if err != nil {
		return nil, err
	}
	defer credentials.Zero()

	return client.NewClient(exchange.Name, credentials.APIKey, credentials.SecretKey, exchange.BaseURL)
}

// NewCredentialUseCase creates a new credential use case instance.
func NewCredentialUseCase(
	txManager database.TxManager,
	credentialRepo CredentialRepository,
	exchangeRepo ExchangeRepository,
	cipher cryptoService.CredentialCipher,
) CredentialUseCase {
	return &credentialUseCase{
		txManager:      txManager,
		credentialRepo: credentialRepo,
		exchangeRepo:   exchangeRepo,
		cipher:         cipher,
	}
}
