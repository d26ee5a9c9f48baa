package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const kucoinDefaultBaseURL = "https://api.kucoin.com"

// KuCoin implements the Client interface for the KuCoin REST API.
//
// Authentication: HMAC-SHA256 over timestamp + method + path + body, base64
// encoded, sent in the KC-API-* headers.
type KuCoin struct {
	apiKey     string
	secretKey  string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewKuCoin creates a KuCoin client. An empty baseURL selects the production
// endpoint.
func NewKuCoin(apiKey, secretKey, baseURL string) *KuCoin {
	if baseURL == "" {
		baseURL = kucoinDefaultBaseURL
	}
	return &KuCoin{
		apiKey:     apiKey,
		secretKey:  secretKey,
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		now:        time.Now,
	}
}

// Name returns the canonical exchange name.
func (k *KuCoin) Name() string {
	return "kucoin"
}

// BaseURL returns the REST endpoint this client targets.
func (k *KuCoin) BaseURL() string {
	return k.baseURL
}

// SignRequest signs a request according to the KuCoin HMAC scheme.
func (k *KuCoin) SignRequest(req *http.Request, body []byte) error {
	timestamp := strconv.FormatInt(k.now().UnixMilli(), 10)
	message := timestamp + req.Method + req.URL.Path + string(body)

	mac := hmac.New(sha256.New, []byte(k.secretKey))
	if _, err := mac.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	req.Header.Set("KC-API-KEY", k.apiKey)
	req.Header.Set("KC-API-SIGN", base64.StdEncoding.EncodeToString(mac.Sum(nil)))
	req.Header.Set("KC-API-TIMESTAMP", timestamp)

	return nil
}
