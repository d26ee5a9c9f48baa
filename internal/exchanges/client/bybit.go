package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	bybitDefaultBaseURL = "https://api.bybit.com"
	bybitRecvWindow     = "5000"
)

// Bybit implements the Client interface for the Bybit v5 API.
//
// Authentication: HMAC-SHA256 over timestamp + key + recv_window + payload,
// hex encoded, sent in the X-BAPI-* headers.
type Bybit struct {
	apiKey     string
	secretKey  string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewBybit creates a Bybit client. An empty baseURL selects the production
// endpoint.
func NewBybit(apiKey, secretKey, baseURL string) *Bybit {
	if baseURL == "" {
		baseURL = bybitDefaultBaseURL
	}
	return &Bybit{
		apiKey:     apiKey,
		secretKey:  secretKey,
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		now:        time.Now,
	}
}

// Name returns the canonical exchange name.
func (b *Bybit) Name() string {
	return "bybit"
}

// BaseURL returns the REST endpoint this client targets.
func (b *Bybit) BaseURL() string {
	return b.baseURL
}

// SignRequest signs a request according to the Bybit v5 HMAC scheme.
func (b *Bybit) SignRequest(req *http.Request, body []byte) error {
	timestamp := strconv.FormatInt(b.now().UnixMilli(), 10)

	payload := req.URL.RawQuery
	if len(body) > 0 {
		payload = string(body)
	}

	message := timestamp + b.apiKey + bybitRecvWindow + payload
	mac := hmac.New(sha256.New, []byte(b.secretKey))
	if _, err := mac.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	req.Header.Set("X-BAPI-API-KEY", b.apiKey)
	req.Header.Set("X-BAPI-TIMESTAMP", timestamp)
	req.Header.Set("X-BAPI-RECV-WINDOW", bybitRecvWindow)
	req.Header.Set("X-BAPI-SIGN", hex.EncodeToString(mac.Sum(nil)))

	return nil
}
