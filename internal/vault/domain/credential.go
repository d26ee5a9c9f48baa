// Package domain defines the core domain models for the credential vault.
// Each record stores one encrypted exchange API key pair owned by a single
// user; the secret material only ever exists in storage as an AEAD-sealed
// blob with its nonce.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CredentialRecord represents a stored exchange credential pair.
//
// The (UserID, ExchangeID, Name) triple is unique: a user may keep several
// credential sets per exchange as long as they are named differently.
type CredentialRecord struct {
	// ID is the unique identifier for this credential record.
	ID uuid.UUID
	// UserID is the owning user. All operations verify ownership against it.
	UserID uuid.UUID
	// ExchangeID references the exchange this credential authenticates against.
	ExchangeID uuid.UUID
	// Name is the user-chosen label for this credential set (e.g. "main", "bot-1").
	Name string
	// APIKeyPublicPart is the cleartext API key, kept for display so listings
	// never require decryption. The key identifier alone is not sensitive;
	// only the secret key signs requests.
	APIKeyPublicPart string
	// Ciphertext is the AEAD-sealed credential payload with the 16-byte
	// authentication tag appended.
	Ciphertext []byte
	// Nonce is the random 12-byte value used during AEAD encryption.
	Nonce []byte
	// IsActive controls whether the credential may be used to build exchange
	// clients. Inactive records stay retrievable by their owner.
	IsActive bool
	// CreatedAt is the UTC timestamp when this record was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last rotation or flag change.
	UpdatedAt time.Time
}
