// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/tradeport/keyvault/internal/validation"
)

// RegisterUserRequest is the payload for user registration.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the registration request. Password strength is enforced
// again in the use case; this catches obviously malformed payloads early.
func (r RegisterUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		),
	)
}
