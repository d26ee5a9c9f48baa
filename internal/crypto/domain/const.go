package domain

// Algorithm represents the cryptographic algorithm used for encryption.
//
// All supported algorithms provide Authenticated Encryption with Associated Data
// (AEAD), ensuring both confidentiality and authenticity of encrypted credential
// blobs. AEAD prevents both unauthorized reading and tampering.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	//
	// Uses a 256-bit key, a 12-byte nonce, and a 16-byte authentication tag
	// appended to the ciphertext. Excellent performance on CPUs with AES-NI.
	// This is the default algorithm for stored credentials.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	//
	// Same key, nonce, and tag sizes as AESGCM with a constant-time software
	// implementation, preferred on platforms without AES hardware acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// MasterKeySize is the required master key length in bytes (256 bits).
const MasterKeySize = 32
