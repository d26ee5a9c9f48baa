package dto

import (
	vaultDomain "github.com/tradeport/keyvault/internal/vault/domain"
)

// ToCredentialResponse converts a domain credential record to its external
// representation.
func ToCredentialResponse(record *vaultDomain.CredentialRecord) CredentialResponse {
	return CredentialResponse{
		ID:               record.ID,
		ExchangeID:       record.ExchangeID,
		Name:             record.Name,
		APIKeyPublicPart: record.APIKeyPublicPart,
		IsActive:         record.IsActive,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}

// ToCredentialListResponse converts a page of records.
func ToCredentialListResponse(records []*vaultDomain.CredentialRecord, offset, limit int) CredentialListResponse {
	credentials := make([]CredentialResponse, 0, len(records))
	for _, record := range records {
		credentials = append(credentials, ToCredentialResponse(record))
	}
	return CredentialListResponse{
		Credentials: credentials,
		Offset:      offset,
		Limit:       limit,
	}
}
