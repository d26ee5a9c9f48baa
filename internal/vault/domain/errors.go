package domain

import (
	"github.com/tradeport/keyvault/internal/errors"
)

// Credential vault error definitions.
var (
	// ErrCredentialNotFound indicates no credential record exists for the
	// given identifier.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrCredentialNameTaken indicates the user already has a credential with
	// the same name for the same exchange.
	ErrCredentialNameTaken = errors.Wrap(errors.ErrConflict, "credential name already in use for this exchange")

	// ErrNotRecordOwner indicates the requesting user does not own the
	// credential record.
	ErrNotRecordOwner = errors.Wrap(errors.ErrForbidden, "credential belongs to another user")

	// ErrCredentialInactive indicates the credential is disabled and cannot
	// be used to build an exchange client.
	ErrCredentialInactive = errors.Wrap(errors.ErrInvalidInput, "credential is inactive")
)
