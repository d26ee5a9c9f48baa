package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tradeport/keyvault/internal/metrics"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "users", operation, status)
	u.metrics.RecordDuration(ctx, "users", operation, time.Since(start), status)
}

// Register records metrics for user registration.
func (u *userUseCaseWithMetrics) Register(
	ctx context.Context,
	input RegisterUserInput,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	u.record(ctx, "user_register", start, err)
	return user, err
}

// Authenticate records metrics for password verification.
func (u *userUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	email, password string,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Authenticate(ctx, email, password)
	u.record(ctx, "user_authenticate", start, err)
	return user, err
}

// Get records metrics for user retrieval.
func (u *userUseCaseWithMetrics) Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, userID)
	u.record(ctx, "user_get", start, err)
	return user, err
}

// GetByEmail records metrics for user lookup by email.
func (u *userUseCaseWithMetrics) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.GetByEmail(ctx, email)
	u.record(ctx, "user_get_by_email", start, err)
	return user, err
}
