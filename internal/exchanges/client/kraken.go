package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const krakenDefaultBaseURL = "https://api.kraken.com"

// Kraken implements the Client interface for the Kraken REST API.
//
// Authentication: the secret key is base64-decoded and used as an
// HMAC-SHA512 key over path + SHA256(nonce + body); the base64 signature is
// sent in the API-Sign header alongside the API-Key header.
type Kraken struct {
	apiKey     string
	secret     []byte
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewKraken creates a Kraken client. The secret key must be base64 encoded
// as issued by Kraken; an empty baseURL selects the production endpoint.
func NewKraken(apiKey, secretKey, baseURL string) (*Kraken, error) {
	secret, err := base64.StdEncoding.DecodeString(secretKey)
	if err != nil {
		return nil, fmt.Errorf("kraken secret key is not valid base64: %w", err)
	}

	if baseURL == "" {
		baseURL = krakenDefaultBaseURL
	}
	return &Kraken{
		apiKey:     apiKey,
		secret:     secret,
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		now:        time.Now,
	}, nil
}

// Name returns the canonical exchange name.
func (k *Kraken) Name() string {
	return "kraken"
}

// BaseURL returns the REST endpoint this client targets.
func (k *Kraken) BaseURL() string {
	return k.baseURL
}

// SignRequest signs a request according to the Kraken HMAC-SHA512 scheme.
func (k *Kraken) SignRequest(req *http.Request, body []byte) error {
	nonce := strconv.FormatInt(k.now().UnixMilli(), 10)

	inner := sha256.Sum256(append([]byte(nonce), body...))
	mac := hmac.New(sha512.New, k.secret)
	if _, err := mac.Write(append([]byte(req.URL.Path), inner[:]...)); err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	req.Header.Set("API-Key", k.apiKey)
	req.Header.Set("API-Sign", base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	return nil
}
