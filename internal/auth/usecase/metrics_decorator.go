package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/tradeport/keyvault/internal/auth/domain"
	"github.com/tradeport/keyvault/internal/metrics"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", operation, status)
	t.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Issue records metrics for token issuance.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	input IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, input)
	t.record(ctx, "token_issue", start, err)
	return output, err
}

// Authenticate records metrics for token authentication.
func (t *tokenUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	tokenHash string,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := t.next.Authenticate(ctx, tokenHash)
	t.record(ctx, "token_authenticate", start, err)
	return user, err
}

// Revoke records metrics for token revocation.
func (t *tokenUseCaseWithMetrics) Revoke(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	start := time.Now()
	err := t.next.Revoke(ctx, userID, tokenHash)
	t.record(ctx, "token_revoke", start, err)
	return err
}
