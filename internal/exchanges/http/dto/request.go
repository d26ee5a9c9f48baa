// Package dto provides data transfer objects for the exchanges HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/tradeport/keyvault/internal/validation"
)

// CreateExchangeRequest is the payload for registering an exchange venue.
type CreateExchangeRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	BaseURL     string `json:"base_url"`
}

// Validate validates the create exchange request.
func (r CreateExchangeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.ExchangeName,
		),
		validation.Field(&r.DisplayName,
			validation.Required.Error("display_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("display_name must be between 1 and 255 characters"),
		),
	)
}
