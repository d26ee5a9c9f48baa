package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("keyvault")

	require.NoError(t, err)
	assert.NotNil(t, provider.meterProvider)
	assert.NotNil(t, provider.exporter)
	assert.NotNil(t, provider.registry)
}

func TestProviderHandler(t *testing.T) {
	provider, err := NewProvider("keyvault")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	// Record something so the scrape output is non-trivial.
	business, err := NewBusinessMetrics(provider.MeterProvider(), "keyvault")
	require.NoError(t, err)
	business.RecordOperation(context.Background(), "vault", "credential_store", "success")
	business.RecordDuration(context.Background(), "vault", "credential_store", 25*time.Millisecond, "success")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "keyvault_operations_total"))
}

func TestProviderShutdown(t *testing.T) {
	t.Run("shuts down cleanly", func(t *testing.T) {
		provider, err := NewProvider("keyvault")
		require.NoError(t, err)

		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("nil meter provider is a no-op", func(t *testing.T) {
		provider := &Provider{meterProvider: nil}

		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}
