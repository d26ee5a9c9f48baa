package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/tradeport/keyvault/internal/errors"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
	appValidation "github.com/tradeport/keyvault/internal/validation"
)

// UserUseCaseService handles user-related business logic.
type UserUseCaseService struct {
	userRepo       UserRepository
	passwordHasher *pwdhash.PasswordHasher
}

func (u *UserUseCaseService) validateRegisterInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a new user with an Argon2id password hash.
func (u *UserUseCaseService) Register(
	ctx context.Context,
	input RegisterUserInput,
) (*userDomain.User, error) {
	if err := u.validateRegisterInput(input); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))

	// Uniqueness precheck; the database unique index remains the
	// ultimate guarantee under concurrency.
	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, userDomain.ErrEmailTaken
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := u.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies an email/password pair and returns the matching user.
func (u *UserUseCaseService) Authenticate(
	ctx context.Context,
	email, password string,
) (*userDomain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, userDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := u.passwordHasher.Verify([]byte(password), user.PasswordHash)
	if err != nil || !valid {
		return nil, userDomain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, userDomain.ErrUserInactive
	}

	return user, nil
}

// Get retrieves a user by ID.
func (u *UserUseCaseService) Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, userDomain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by normalized email.
func (u *UserUseCaseService) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, userDomain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// NewUserUseCase creates a new user use case instance.
func NewUserUseCase(userRepo UserRepository) (*UserUseCaseService, error) {
	// Interactive policy targets login-path latency.
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &UserUseCaseService{
		userRepo:       userRepo,
		passwordHasher: hasher,
	}, nil
}
