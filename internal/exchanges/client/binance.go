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

const binanceDefaultBaseURL = "https://api.binance.com"

// Binance implements the Client interface for the Binance spot API.
//
// Authentication: the query string plus body is HMAC-SHA256 signed with the
// secret key, the hex signature appended as the signature parameter, and the
// API key sent in the X-MBX-APIKEY header.
type Binance struct {
	apiKey     string
	secretKey  string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewBinance creates a Binance client. An empty baseURL selects the
// production endpoint.
func NewBinance(apiKey, secretKey, baseURL string) *Binance {
	if baseURL == "" {
		baseURL = binanceDefaultBaseURL
	}
	return &Binance{
		apiKey:     apiKey,
		secretKey:  secretKey,
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		now:        time.Now,
	}
}

// Name returns the canonical exchange name.
func (b *Binance) Name() string {
	return "binance"
}

// BaseURL returns the REST endpoint this client targets.
func (b *Binance) BaseURL() string {
	return b.baseURL
}

// SignRequest signs a request according to the Binance HMAC scheme.
func (b *Binance) SignRequest(req *http.Request, body []byte) error {
	query := req.URL.Query()
	query.Set("timestamp", strconv.FormatInt(b.now().UnixMilli(), 10))

	payload := query.Encode() + string(body)
	mac := hmac.New(sha256.New, []byte(b.secretKey))
	if _, err := mac.Write([]byte(payload)); err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	query.Set("signature", hex.EncodeToString(mac.Sum(nil)))
	req.URL.RawQuery = query.Encode()
	req.Header.Set("X-MBX-APIKEY", b.apiKey)

	return nil
}
