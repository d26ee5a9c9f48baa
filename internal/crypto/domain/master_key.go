package domain

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

// MasterKeyEnvVar is the environment variable holding the base64-encoded master key.
const MasterKeyEnvVar = "MASTER_ENCRYPTION_KEY"

// MasterKey holds the process-wide symmetric key protecting all stored
// exchange credentials.
//
// The key is loaded once at startup, is immutable for the process lifetime,
// and is never persisted by the application. Because it never changes after
// load, it is safe to share across goroutines without locking. Its compromise
// compromises every stored credential record, so it should come from a secret
// store or deployment-managed environment in production.
//
// The vault receives the key by injection at construction time; nothing in
// this package reads it lazily per request, so a missing or malformed key
// fails the process before it serves any credential operation.
type MasterKey struct {
	key []byte
}

// NewMasterKey wraps raw key material as a MasterKey.
//
// Returns ErrInvalidKeySize unless the material is exactly 32 bytes.
// The caller retains ownership of the input slice; a private copy is made so
// later zeroing of the input cannot corrupt the loaded key.
func NewMasterKey(material []byte) (*MasterKey, error) {
	if len(material) != MasterKeySize {
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d",
			ErrInvalidKeySize, MasterKeySize, len(material))
	}

	key := make([]byte, MasterKeySize)
	copy(key, material)

	return &MasterKey{key: key}, nil
}

// Bytes returns the raw 32-byte key material.
//
// Callers must treat the returned slice as read-only.
func (m *MasterKey) Bytes() []byte {
	return m.key
}

// Close zeroes the key material. The MasterKey must not be used afterwards.
func (m *MasterKey) Close() {
	Zero(m.key)
	m.key = nil
}

// LoadMasterKeyFromEnv loads and validates the master key from the
// MASTER_ENCRYPTION_KEY environment variable.
//
// The variable must contain a standard-base64 encoding of exactly 32 bytes.
// All failure modes wrap the configuration-error sentinel and are fatal:
//   - ErrMasterKeyNotSet if the variable is absent or empty
//   - ErrInvalidMasterKeyBase64 if decoding fails
//   - ErrInvalidKeySize if the decoded length is not 32 bytes
//
// The intermediate decoded buffer is zeroed before returning.
func LoadMasterKeyFromEnv() (*MasterKey, error) {
	raw := os.Getenv(MasterKeyEnvVar)
	if raw == "" {
		return nil, fmt.Errorf("%w: set %s to a base64-encoded 32-byte key "+
			"(generate one with the create-master-key command)",
			ErrMasterKeyNotSet, MasterKeyEnvVar)
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterKeyBase64, err)
	}

	masterKey, err := NewMasterKey(decoded)
	Zero(decoded)
	if err != nil {
		return nil, err
	}

	return masterKey, nil
}

// GenerateMasterKey produces a new cryptographically random 256-bit key,
// returned as a standard-base64 string.
//
// Pure operator bootstrap helper: each call yields an independent key and has
// no side effects beyond consuming entropy. It is never called during normal
// request handling; the result is distributed out-of-band to the process
// configuration.
func GenerateMasterKey() (string, error) {
	key := make([]byte, MasterKeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate master key: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(key)
	Zero(key)

	return encoded, nil
}
