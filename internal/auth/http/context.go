// Package http provides HTTP middleware and handlers for authentication.
package http

import (
	"context"

	userDomain "github.com/tradeport/keyvault/internal/user/domain"
)

// userKey is a context key type for storing authenticated users.
type userKey struct{}

// tokenHashKey is a context key type for storing the hash of the presented token.
type tokenHashKey struct{}

// WithUser stores an authenticated user in the context.
func WithUser(ctx context.Context, user *userDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the authenticated user from the context.
// Returns (nil, false) if no user was set by the authentication middleware.
func GetUser(ctx context.Context) (*userDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*userDomain.User)
	return user, ok
}

// WithTokenHash stores the hash of the presented bearer token in the context.
// Used by the logout handler to revoke the current token.
func WithTokenHash(ctx context.Context, tokenHash string) context.Context {
	return context.WithValue(ctx, tokenHashKey{}, tokenHash)
}

// GetTokenHash retrieves the presented token hash from the context.
func GetTokenHash(ctx context.Context) (string, bool) {
	tokenHash, ok := ctx.Value(tokenHashKey{}).(string)
	return tokenHash, ok
}
