package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/tradeport/keyvault/internal/crypto/domain"
)

func newTestCipher(t *testing.T) *CredentialCipherService {
	t.Helper()

	masterKey, err := cryptoDomain.NewMasterKey(randomKey(t))
	require.NoError(t, err)

	cipher, err := NewCredentialCipher(NewAEADManager(), masterKey, cryptoDomain.AESGCM)
	require.NoError(t, err)
	return cipher
}

func TestNewCredentialCipher(t *testing.T) {
	t.Run("rejects unknown algorithm", func(t *testing.T) {
		masterKey, err := cryptoDomain.NewMasterKey(randomKey(t))
		require.NoError(t, err)

		_, err = NewCredentialCipher(NewAEADManager(), masterKey, cryptoDomain.Algorithm("rot13"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})
}

func TestCredentialCipherEncrypt(t *testing.T) {
	cipher := newTestCipher(t)

	t.Run("round trip", func(t *testing.T) {
		credentials := cryptoDomain.Credentials{APIKey: "pub123", SecretKey: "sec456"}

		ciphertext, nonce, err := cipher.Encrypt(credentials)
		require.NoError(t, err)
		assert.Len(t, nonce, 12)
		assert.Greater(t, len(ciphertext), 16)

		decrypted, err := cipher.Decrypt(ciphertext, nonce)
		require.NoError(t, err)
		assert.Equal(t, "pub123", decrypted.APIKey)
		assert.Equal(t, "sec456", decrypted.SecretKey)
	})

	t.Run("fresh nonce per call", func(t *testing.T) {
		credentials := cryptoDomain.Credentials{APIKey: "pub123", SecretKey: "sec456"}

		_, nonce1, err := cipher.Encrypt(credentials)
		require.NoError(t, err)
		_, nonce2, err := cipher.Encrypt(credentials)
		require.NoError(t, err)

		assert.NotEqual(t, nonce1, nonce2)
	})

	t.Run("canonical payload format", func(t *testing.T) {
		cipher := newTestCipher(t)
		cipher.now = func() time.Time {
			return time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
		}

		payload := credentialPayload{
			APIKey:    "pub123",
			SecretKey: "sec456",
			Timestamp: cipher.now().Format(time.RFC3339),
		}
		serialized, err := json.Marshal(payload)
		require.NoError(t, err)

		// Keys in lexicographic order, timestamp included.
		expected := `{"api_key":"pub123","secret_key":"sec456","timestamp":"2026-08-27T12:00:00Z"}`
		assert.Equal(t, expected, string(serialized))
	})

	t.Run("handles unicode and long keys", func(t *testing.T) {
		credentials := cryptoDomain.Credentials{
			APIKey:    strings.Repeat("k", 4096),
			SecretKey: "sëcret-ключ-鍵",
		}

		ciphertext, nonce, err := cipher.Encrypt(credentials)
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext, nonce)
		require.NoError(t, err)
		assert.Equal(t, credentials, decrypted)
	})
}

func TestCredentialCipherDecrypt(t *testing.T) {
	cipher := newTestCipher(t)
	credentials := cryptoDomain.Credentials{APIKey: "pub123", SecretKey: "sec456"}

	ciphertext, nonce, err := cipher.Encrypt(credentials)
	require.NoError(t, err)

	t.Run("flipped ciphertext byte", func(t *testing.T) {
		tampered := make([]byte, len(ciphertext))
		copy(tampered, ciphertext)
		tampered[len(tampered)/2] ^= 0x01

		_, err := cipher.Decrypt(tampered, nonce)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("flipped nonce byte", func(t *testing.T) {
		tampered := make([]byte, len(nonce))
		copy(tampered, nonce)
		tampered[0] ^= 0x01

		_, err := cipher.Decrypt(ciphertext, tampered)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		_, err := cipher.Decrypt(ciphertext[:8], nonce)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("wrong master key", func(t *testing.T) {
		other := newTestCipher(t)

		_, err := other.Decrypt(ciphertext, nonce)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("missing required field", func(t *testing.T) {
		// Seal a structurally valid but incomplete payload with the same key.
		plaintext := []byte(`{"api_key":"pub123","timestamp":"2026-08-27T12:00:00Z"}`)
		badCiphertext, badNonce, err := cipher.aead.Encrypt(plaintext, nil)
		require.NoError(t, err)

		_, err = cipher.Decrypt(badCiphertext, badNonce)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("non-json plaintext", func(t *testing.T) {
		badCiphertext, badNonce, err := cipher.aead.Encrypt([]byte("not json"), nil)
		require.NoError(t, err)

		_, err = cipher.Decrypt(badCiphertext, badNonce)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("error carries no plaintext detail", func(t *testing.T) {
		tampered := make([]byte, len(ciphertext))
		copy(tampered, ciphertext)
		tampered[0] ^= 0xff

		_, err := cipher.Decrypt(tampered, nonce)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "tag")
		assert.NotContains(t, err.Error(), "pub123")
	})
}
