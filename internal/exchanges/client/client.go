// Package client provides authenticated API clients for the supported
// trading venues. Clients are constructed from decrypted vault credentials
// and only carry request-signing behavior; the actual trading surface lives
// with the caller.
package client

import (
	"net/http"
	"time"
)

// Client is an exchange API client bound to one credential pair.
//
// SignRequest applies the venue's authentication scheme in place: signature
// parameters or headers computed over the request and body with the secret
// key. Implementations never log or expose the secret.
type Client interface {
	// Name returns the canonical exchange name (e.g. "binance").
	Name() string

	// BaseURL returns the REST endpoint this client targets.
	BaseURL() string

	// SignRequest authenticates an outgoing request in place.
	SignRequest(req *http.Request, body []byte) error
}

// newHTTPClient returns the shared HTTP client configuration used by all
// exchange clients.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
