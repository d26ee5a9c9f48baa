// Package dto provides data transfer objects for the vault HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/tradeport/keyvault/internal/validation"
)

// StoreCredentialRequest is the payload for storing a new credential pair.
type StoreCredentialRequest struct {
	ExchangeID string `json:"exchange_id"`
	Name       string `json:"name"`
	APIKey     string `json:"api_key"`
	SecretKey  string `json:"secret_key"`
}

// Validate validates the store credential request.
func (r StoreCredentialRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ExchangeID,
			validation.Required.Error("exchange_id is required"),
		),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			appValidation.NoWhitespace,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&r.APIKey,
			validation.Required.Error("api_key is required"),
			appValidation.NotBlank,
		),
		validation.Field(&r.SecretKey,
			validation.Required.Error("secret_key is required"),
			appValidation.NotBlank,
		),
	)
}

// UpdateCredentialRequest is the payload for rotating a credential pair.
type UpdateCredentialRequest struct {
	APIKey    string `json:"api_key"`
	SecretKey string `json:"secret_key"`
}

// Validate validates the update credential request.
func (r UpdateCredentialRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.APIKey,
			validation.Required.Error("api_key is required"),
			appValidation.NotBlank,
		),
		validation.Field(&r.SecretKey,
			validation.Required.Error("secret_key is required"),
			appValidation.NotBlank,
		),
	)
}

// SetCredentialActiveRequest is the payload for toggling a credential.
type SetCredentialActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

// Validate validates the toggle request.
func (r SetCredentialActiveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IsActive,
			validation.NotNil.Error("is_active is required"),
		),
	)
}
