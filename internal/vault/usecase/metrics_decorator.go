package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/tradeport/keyvault/internal/crypto/domain"
	"github.com/tradeport/keyvault/internal/exchanges/client"
	"github.com/tradeport/keyvault/internal/metrics"
	vaultDomain "github.com/tradeport/keyvault/internal/vault/domain"
)

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *credentialUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "vault", operation, status)
	c.metrics.RecordDuration(ctx, "vault", operation, time.Since(start), status)
}

// Store records metrics for credential creation.
func (c *credentialUseCaseWithMetrics) Store(
	ctx context.Context,
	input *StoreCredentialInput,
) (*vaultDomain.CredentialRecord, error) {
	start := time.Now()
	credential, err := c.next.Store(ctx, input)
	c.record(ctx, "credential_store", start, err)
	return credential, err
}

// Get records metrics for metadata retrieval.
func (c *credentialUseCaseWithMetrics) Get(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (*vaultDomain.CredentialRecord, error) {
	start := time.Now()
	credential, err := c.next.Get(ctx, userID, credentialID)
	c.record(ctx, "credential_get", start, err)
	return credential, err
}

// Reveal records metrics for credential decryption.
func (c *credentialUseCaseWithMetrics) Reveal(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (*vaultDomain.CredentialRecord, cryptoDomain.Credentials, error) {
	start := time.Now()
	credential, credentials, err := c.next.Reveal(ctx, userID, credentialID)
	c.record(ctx, "credential_reveal", start, err)
	return credential, credentials, err
}

// Update records metrics for credential rotation.
func (c *credentialUseCaseWithMetrics) Update(
	ctx context.Context,
	userID, credentialID uuid.UUID,
	apiKey, secretKey string,
) (*vaultDomain.CredentialRecord, error) {
	start := time.Now()
	credential, err := c.next.Update(ctx, userID, credentialID, apiKey, secretKey)
	c.record(ctx, "credential_update", start, err)
	return credential, err
}

// Delete records metrics for credential removal.
func (c *credentialUseCaseWithMetrics) Delete(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) error {
	start := time.Now()
	err := c.next.Delete(ctx, userID, credentialID)
	c.record(ctx, "credential_delete", start, err)
	return err
}

// SetActive records metrics for active flag changes.
func (c *credentialUseCaseWithMetrics) SetActive(
	ctx context.Context,
	userID, credentialID uuid.UUID,
	isActive bool,
) (*vaultDomain.CredentialRecord, error) {
	start := time.Now()
	credential, err := c.next.SetActive(ctx, userID, credentialID, isActive)
	c.record(ctx, "credential_set_active", start, err)
	return credential, err
}

// List records metrics for credential listing.
func (c *credentialUseCaseWithMetrics) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.CredentialRecord, error) {
	start := time.Now()
	credentials, err := c.next.List(ctx, userID, offset, limit)
	c.record(ctx, "credential_list", start, err)
	return credentials, err
}

// BuildClient records metrics for exchange client construction.
func (c *credentialUseCaseWithMetrics) BuildClient(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (client.Client, error) {
	start := time.Now()
	exchangeClient, err := c.next.BuildClient(ctx, userID, credentialID)
	c.record(ctx, "client_build", start, err)
	return exchangeClient, err
}
