package service

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	svc := NewTokenService()

	t.Run("generates url-safe tokens with matching hashes", func(t *testing.T) {
		plain, hash, err := svc.GenerateToken()
		require.NoError(t, err)

		raw, err := base64.URLEncoding.DecodeString(plain)
		require.NoError(t, err)
		assert.Len(t, raw, 32)

		assert.Equal(t, svc.HashToken(plain), hash)
		_, err = hex.DecodeString(hash)
		assert.NoError(t, err)
		assert.Len(t, hash, 64)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			plain, _, err := svc.GenerateToken()
			require.NoError(t, err)
			assert.False(t, seen[plain])
			seen[plain] = true
		}
	})

	t.Run("hashing is deterministic", func(t *testing.T) {
		assert.Equal(t, svc.HashToken("abc"), svc.HashToken("abc"))
		assert.NotEqual(t, svc.HashToken("abc"), svc.HashToken("abd"))
	})
}
