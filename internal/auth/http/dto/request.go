// Package dto defines request and response payloads for auth endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/tradeport/keyvault/internal/validation"
)

// IssueTokenRequest is the login payload for token issuance.
type IssueTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the token issuance request.
func (r IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
}
