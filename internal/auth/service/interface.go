// Package service provides authentication primitives.
package service

// TokenService generates and hashes API tokens.
type TokenService interface {
	// GenerateToken returns a new random token and its hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token for storage or lookup.
	HashToken(plainToken string) string
}
