package usecase

import (
	"context"
	"crypto/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/tradeport/keyvault/internal/crypto/domain"
	cryptoService "github.com/tradeport/keyvault/internal/crypto/service"
	databaseMocks "github.com/tradeport/keyvault/internal/database/mocks"
	apperrors "github.com/tradeport/keyvault/internal/errors"
	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
	vaultDomain "github.com/tradeport/keyvault/internal/vault/domain"
	"github.com/tradeport/keyvault/internal/vault/usecase/mocks"
)

type vaultFixture struct {
	txManager      *databaseMocks.MockTxManager
	credentialRepo *mocks.MockCredentialRepository
	exchangeRepo   *mocks.MockExchangeRepository
	cipher         cryptoService.CredentialCipher
	useCase        CredentialUseCase
	exchange       *exchangesDomain.Exchange
	userID         uuid.UUID
}

func newVaultFixture(t *testing.T) *vaultFixture {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	masterKey, err := cryptoDomain.NewMasterKey(key)
	require.NoError(t, err)

	cipher, err := cryptoService.NewCredentialCipher(
		cryptoService.NewAEADManager(), masterKey, cryptoDomain.AESGCM,
	)
	require.NoError(t, err)

	f := &vaultFixture{
		txManager:      databaseMocks.NewPassthroughTxManager(),
		credentialRepo: new(mocks.MockCredentialRepository),
		exchangeRepo:   new(mocks.MockExchangeRepository),
		cipher:         cipher,
		exchange: &exchangesDomain.Exchange{
			ID:          uuid.Must(uuid.NewV7()),
			Name:        "binance",
			DisplayName: "Binance",
			BaseURL:     "https://api.binance.com",
			IsActive:    true,
			CreatedAt:   time.Now().UTC(),
		},
		userID: uuid.Must(uuid.NewV7()),
	}
	f.useCase = NewCredentialUseCase(f.txManager, f.credentialRepo, f.exchangeRepo, f.cipher)
	return f
}

// sealedCredential builds a record whose ciphertext the fixture cipher can open.
func (f *vaultFixture) sealedCredential(t *testing.T, apiKey, secretKey string) *vaultDomain.CredentialRecord {
	t.Helper()

	ciphertext, nonce, err := f.cipher.Encrypt(cryptoDomain.Credentials{
		APIKey:    apiKey,
		SecretKey: secretKey,
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	return &vaultDomain.CredentialRecord{
		ID:               uuid.Must(uuid.NewV7()),
		UserID:           f.userID,
		ExchangeID:       f.exchange.ID,
		Name:             "main",
		APIKeyPublicPart: apiKey,
		Ciphertext:       ciphertext,
		Nonce:            nonce,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestCredentialUseCaseStore(t *testing.T) {
	ctx := context.Background()

	t.Run("stores an encrypted credential", func(t *testing.T) {
		f := newVaultFixture(t)
		f.exchangeRepo.On("GetByID", ctx, f.exchange.ID).Return(f.exchange, nil).Once()
		f.credentialRepo.On("GetByUserExchangeName", ctx, f.userID, f.exchange.ID, "main").
			Return(nil, apperrors.ErrNotFound).Once()

		var stored *vaultDomain.CredentialRecord
		f.credentialRepo.On("Create", ctx, mock.AnythingOfType("*domain.CredentialRecord")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*vaultDomain.CredentialRecord)
			}).
			Return(nil).Once()

		credential, err := f.useCase.Store(ctx, &StoreCredentialInput{
			UserID:     f.userID,
			ExchangeID: f.exchange.ID,
			Name:       "main",
			APIKey:     "pub123",
			SecretKey:  "sec456",
		})

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, credential, stored)
		assert.True(t, stored.IsActive)
		assert.Equal(t, "pub123", stored.APIKeyPublicPart)
		assert.Len(t, stored.Nonce, 12)

		// Stored blob is real ciphertext, not the plaintext pair.
		assert.NotContains(t, string(stored.Ciphertext), "sec456")
		decrypted, err := f.cipher.Decrypt(stored.Ciphertext, stored.Nonce)
		require.NoError(t, err)
		assert.Equal(t, "pub123", decrypted.APIKey)
		assert.Equal(t, "sec456", decrypted.SecretKey)
	})

	t.Run("stores the full api key as the public part", func(t *testing.T) {
		f := newVaultFixture(t)
		f.exchangeRepo.On("GetByID", ctx, f.exchange.ID).Return(f.exchange, nil).Once()
		f.credentialRepo.On("GetByUserExchangeName", ctx, f.userID, f.exchange.ID, "main").
			Return(nil, apperrors.ErrNotFound).Once()
		f.credentialRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		credential, err := f.useCase.Store(ctx, &StoreCredentialInput{
			UserID:     f.userID,
			ExchangeID: f.exchange.ID,
			Name:       "main",
			APIKey:     "averylongapikey123456",
			SecretKey:  "sec456",
		})

		require.NoError(t, err)
		assert.Equal(t, "averylongapikey123456", credential.APIKeyPublicPart)
	})

	t.Run("rejects duplicate names before encrypting", func(t *testing.T) {
		f := newVaultFixture(t)
		f.exchangeRepo.On("GetByID", ctx, f.exchange.ID).Return(f.exchange, nil).Once()
		f.credentialRepo.On("GetByUserExchangeName", ctx, f.userID, f.exchange.ID, "main").
			Return(f.sealedCredential(t, "pub123", "sec456"), nil).Once()

		_, err := f.useCase.Store(ctx, &StoreCredentialInput{
			UserID:     f.userID,
			ExchangeID: f.exchange.ID,
			Name:       "main",
			APIKey:     "other",
			SecretKey:  "other",
		})

		assert.ErrorIs(t, err, vaultDomain.ErrCredentialNameTaken)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
		f.credentialRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects unknown exchanges", func(t *testing.T) {
		f := newVaultFixture(t)
		f.exchangeRepo.On("GetByID", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

		_, err := f.useCase.Store(ctx, &StoreCredentialInput{
			UserID:     f.userID,
			ExchangeID: uuid.Must(uuid.NewV7()),
			Name:       "main",
		})

		assert.ErrorIs(t, err, exchangesDomain.ErrExchangeNotFound)
	})

	t.Run("rejects inactive exchanges", func(t *testing.T) {
		f := newVaultFixture(t)
		inactive := *f.exchange
		inactive.IsActive = false
		f.exchangeRepo.On("GetByID", ctx, f.exchange.ID).Return(&inactive, nil).Once()

		_, err := f.useCase.Store(ctx, &StoreCredentialInput{
			UserID:     f.userID,
			ExchangeID: f.exchange.ID,
			Name:       "main",
		})

		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestCredentialUseCaseReveal(t *testing.T) {
	ctx := context.Background()

	t.Run("decrypts for the owner", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()

		record, credentials, err := f.useCase.Reveal(ctx, f.userID, credential.ID)

		require.NoError(t, err)
		assert.Equal(t, credential.ID, record.ID)
		assert.Equal(t, "pub123", credentials.APIKey)
		assert.Equal(t, "sec456", credentials.SecretKey)
	})

	t.Run("rejects non-owners before decryption", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()

		_, _, err := f.useCase.Reveal(ctx, uuid.Must(uuid.NewV7()), credential.ID)

		assert.ErrorIs(t, err, vaultDomain.ErrNotRecordOwner)
		assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	})

	t.Run("works on inactive records", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		credential.IsActive = false
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()

		_, credentials, err := f.useCase.Reveal(ctx, f.userID, credential.ID)

		require.NoError(t, err)
		assert.Equal(t, "sec456", credentials.SecretKey)
	})

	t.Run("missing record", func(t *testing.T) {
		f := newVaultFixture(t)
		f.credentialRepo.On("GetByID", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

		_, _, err := f.useCase.Reveal(ctx, f.userID, uuid.Must(uuid.NewV7()))

		assert.ErrorIs(t, err, vaultDomain.ErrCredentialNotFound)
	})

	t.Run("tampered blob yields a generic decryption error", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		credential.Ciphertext[0] ^= 0xff
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()

		_, _, err := f.useCase.Reveal(ctx, f.userID, credential.ID)

		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}

func TestCredentialUseCaseUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("re-encrypts with a fresh nonce", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		oldNonce := make([]byte, len(credential.Nonce))
		copy(oldNonce, credential.Nonce)

		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()

		var newCiphertext, newNonce []byte
		f.credentialRepo.On(
			"UpdateCiphertext", mock.Anything, credential.ID,
			mock.AnythingOfType("[]uint8"), mock.AnythingOfType("[]uint8"), "newpub12",
		).Run(func(args mock.Arguments) {
			newCiphertext = args.Get(2).([]byte)
			newNonce = args.Get(3).([]byte)
		}).Return(nil).Once()

		updated, err := f.useCase.Update(ctx, f.userID, credential.ID, "newpub12", "newsec34")

		require.NoError(t, err)
		assert.NotEqual(t, oldNonce, newNonce)
		assert.Equal(t, newCiphertext, updated.Ciphertext)

		decrypted, err := f.cipher.Decrypt(newCiphertext, newNonce)
		require.NoError(t, err)
		assert.Equal(t, "newpub12", decrypted.APIKey)
		assert.Equal(t, "newsec34", decrypted.SecretKey)
	})

	t.Run("rejects non-owners", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()

		_, err := f.useCase.Update(ctx, uuid.Must(uuid.NewV7()), credential.ID, "a", "b")

		assert.ErrorIs(t, err, vaultDomain.ErrNotRecordOwner)
		f.credentialRepo.AssertNotCalled(t, "UpdateCiphertext")
	})

	t.Run("failed persistence leaves the old blob usable", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()
		f.credentialRepo.On("UpdateCiphertext", mock.Anything, credential.ID, mock.Anything, mock.Anything, mock.Anything).
			Return(apperrors.ErrNotFound).Once()

		_, err := f.useCase.Update(ctx, f.userID, credential.ID, "newpub12", "newsec34")
		require.Error(t, err)

		// Previous ciphertext still decrypts to the old pair.
		decrypted, err := f.cipher.Decrypt(credential.Ciphertext, credential.Nonce)
		require.NoError(t, err)
		assert.Equal(t, "sec456", decrypted.SecretKey)
	})
}

func TestCredentialUseCaseDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an owned record", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()
		f.credentialRepo.On("Delete", ctx, credential.ID).Return(nil).Once()

		require.NoError(t, f.useCase.Delete(ctx, f.userID, credential.ID))
		f.credentialRepo.AssertExpectations(t)
	})

	t.Run("rejects non-owners", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()

		err := f.useCase.Delete(ctx, uuid.Must(uuid.NewV7()), credential.ID)

		assert.ErrorIs(t, err, vaultDomain.ErrNotRecordOwner)
		f.credentialRepo.AssertNotCalled(t, "Delete")
	})
}

func TestCredentialUseCaseSetActive(t *testing.T) {
	ctx := context.Background()

	f := newVaultFixture(t)
	credential := f.sealedCredential(t, "pub123", "sec456")
	f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()
	f.credentialRepo.On("SetActive", ctx, credential.ID, false).Return(nil).Once()

	updated, err := f.useCase.SetActive(ctx, f.userID, credential.ID, false)

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestCredentialUseCaseList(t *testing.T) {
	ctx := context.Background()

	f := newVaultFixture(t)
	records := []*vaultDomain.CredentialRecord{
		f.sealedCredential(t, "pub123", "sec456"),
	}
	f.credentialRepo.On("ListByUser", ctx, f.userID, 0, 50).Return(records, nil).Once()

	got, err := f.useCase.List(ctx, f.userID, 0, 50)

	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestCredentialUseCaseBuildClient(t *testing.T) {
	ctx := context.Background()

	t.Run("builds a client for an active credential", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()
		f.exchangeRepo.On("GetByID", ctx, f.exchange.ID).Return(f.exchange, nil).Once()

		exchangeClient, err := f.useCase.BuildClient(ctx, f.userID, credential.ID)

		require.NoError(t, err)
		assert.Equal(t, "binance", exchangeClient.Name())
		assert.Equal(t, "https://api.binance.com", exchangeClient.BaseURL())
	})

	t.Run("rejects inactive credentials", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		credential.IsActive = false
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()

		_, err := f.useCase.BuildClient(ctx, f.userID, credential.ID)

		assert.ErrorIs(t, err, vaultDomain.ErrCredentialInactive)
	})

	t.Run("rejects non-owners", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()

		_, err := f.useCase.BuildClient(ctx, uuid.Must(uuid.NewV7()), credential.ID)

		assert.ErrorIs(t, err, vaultDomain.ErrNotRecordOwner)
	})

	t.Run("unsupported venue name surfaces from the factory", func(t *testing.T) {
		f := newVaultFixture(t)
		credential := f.sealedCredential(t, "pub123", "sec456")
		rogue := *f.exchange
		rogue.Name = "mtgox"
		f.credentialRepo.On("GetByID", ctx, credential.ID).Return(credential, nil).Once()
		f.exchangeRepo.On("GetByID", ctx, f.exchange.ID).Return(&rogue, nil).Once()

		_, err := f.useCase.BuildClient(ctx, f.userID, credential.ID)

		assert.ErrorIs(t, err, exchangesDomain.ErrUnsupportedExchange)
	})
}
