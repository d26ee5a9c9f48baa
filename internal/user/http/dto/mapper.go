package dto

import (
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
	"github.com/tradeport/keyvault/internal/user/usecase"
)

// ToRegisterUserInput converts a registration request to a use case input.
func ToRegisterUserInput(req RegisterUserRequest) usecase.RegisterUserInput {
	return usecase.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
	}
}

// ToUserResponse converts a domain user to its external representation.
func ToUserResponse(user *userDomain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
