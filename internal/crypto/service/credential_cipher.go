package service

import (
	"encoding/json"
	"fmt"
	"time"

	cryptoDomain "github.com/tradeport/keyvault/internal/crypto/domain"
)

// credentialPayload is the canonical plaintext format for sealed credential
// pairs. Field order matches the lexicographic key order so the serialized
// form is stable: {"api_key":...,"secret_key":...,"timestamp":...}.
//
// The timestamp records when the blob was sealed and doubles as a structural
// sanity check after decryption.
type credentialPayload struct {
	APIKey    string `json:"api_key"`
	SecretKey string `json:"secret_key"`
	Timestamp string `json:"timestamp"`
}

// CredentialCipherService implements CredentialCipher on top of an AEAD
// cipher keyed with the master key.
//
// Every Encrypt call draws a fresh random nonce from the underlying AEAD, so
// sealing the same credential pair twice yields different blobs. Decrypt is
// strict: authentication failure, malformed JSON, and missing required fields
// all collapse into the single generic ErrDecryptionFailed so callers cannot
// distinguish tampering from corruption.
type CredentialCipherService struct {
	aead AEAD
	now  func() time.Time
}

// NewCredentialCipher builds a credential cipher for the given master key and
// algorithm.
//
// Returns an error if the key size is wrong or the algorithm is unknown.
func NewCredentialCipher(
	aeadManager AEADManager,
	masterKey *cryptoDomain.MasterKey,
	alg cryptoDomain.Algorithm,
) (*CredentialCipherService, error) {
	aead, err := aeadManager.CreateCipher(masterKey.Bytes(), alg)
	if err != nil {
		return nil, err
	}

	return &CredentialCipherService{aead: aead, now: time.Now}, nil
}

// Encrypt serializes the credential pair to canonical JSON and seals it.
//
// Returns the ciphertext with the 16-byte authentication tag appended and the
// fresh 12-byte nonce. On any failure nothing useful is returned and the
// error wraps ErrEncryptionFailed.
func (s *CredentialCipherService) Encrypt(
	credentials cryptoDomain.Credentials,
) (ciphertext, nonce []byte, err error) {
	payload := credentialPayload{
		APIKey:    credentials.APIKey,
		SecretKey: credentials.SecretKey,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	ciphertext, nonce, err = s.aead.Encrypt(plaintext, nil)
	cryptoDomain.Zero(plaintext)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	return ciphertext, nonce, nil
}

// Decrypt authenticates and opens a sealed blob back into the credential pair.
//
// The blob must authenticate under the master key with the stored nonce, parse
// as JSON, and carry non-empty api_key and secret_key fields. Any violation
// returns ErrDecryptionFailed without further detail.
func (s *CredentialCipherService) Decrypt(
	ciphertext, nonce []byte,
) (cryptoDomain.Credentials, error) {
	plaintext, err := s.aead.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return cryptoDomain.Credentials{}, cryptoDomain.ErrDecryptionFailed
	}
	defer cryptoDomain.Zero(plaintext)

	var payload credentialPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return cryptoDomain.Credentials{}, cryptoDomain.ErrDecryptionFailed
	}

	if payload.APIKey == "" || payload.SecretKey == "" {
		return cryptoDomain.Credentials{}, cryptoDomain.ErrDecryptionFailed
	}

	return cryptoDomain.Credentials{
		APIKey:    payload.APIKey,
		SecretKey: payload.SecretKey,
	}, nil
}
