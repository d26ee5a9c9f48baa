// Package service provides the cryptographic services protecting stored
// exchange credentials. Implements AEAD ciphers (AES-256-GCM,
// ChaCha20-Poly1305) and the credential cipher that seals API key pairs
// under the master key.
package service

import (
	cryptoDomain "github.com/tradeport/keyvault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// CredentialCipher seals and opens exchange credential pairs under the
// master key.
type CredentialCipher interface {
	// Encrypt serializes the credential pair and encrypts it, returning the
	// ciphertext (authentication tag appended) and the fresh nonce used.
	Encrypt(credentials cryptoDomain.Credentials) (ciphertext, nonce []byte, err error)

	// Decrypt authenticates and decrypts a stored blob back into the
	// credential pair.
	Decrypt(ciphertext, nonce []byte) (cryptoDomain.Credentials, error)
}
