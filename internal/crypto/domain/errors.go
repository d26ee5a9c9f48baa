package domain

import (
	"github.com/tradeport/keyvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrMasterKeyNotSet indicates the MASTER_ENCRYPTION_KEY environment
	// variable is not configured. Fatal at startup.
	ErrMasterKeyNotSet = errors.Wrap(errors.ErrConfiguration, "master encryption key not set")

	// ErrInvalidMasterKeyBase64 indicates the configured master key is not
	// valid standard base64. Fatal at startup.
	ErrInvalidMasterKeyBase64 = errors.Wrap(errors.ErrConfiguration, "master key is not valid base64")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	//
	// The master key must be exactly 32 bytes (256 bits) for both AES-256-GCM
	// and ChaCha20-Poly1305. This error is returned when a key of incorrect
	// length is provided.
	ErrInvalidKeySize = errors.Wrap(errors.ErrConfiguration, "invalid key size")

	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	//
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305)
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrEncryptionFailed indicates an unexpected failure of the encryption
	// primitive. Nothing is persisted when this error is returned.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error can occur due to:
	//   - Wrong decryption key used
	//   - Ciphertext has been tampered with (authentication failure)
	//   - Invalid nonce provided
	//   - Malformed plaintext after a successful authentication check
	//
	// For security reasons, the specific cause is not disclosed to prevent
	// information leakage that could aid attackers. The caller's request is
	// never the cause - the stored blob is - so this is a bare sentinel that
	// surfaces as an internal error, not an input validation failure.
	ErrDecryptionFailed = errors.New("decryption failed")
)
