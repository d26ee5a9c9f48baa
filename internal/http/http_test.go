package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authHTTP "github.com/tradeport/keyvault/internal/auth/http"
	authMocks "github.com/tradeport/keyvault/internal/auth/http/mocks"
	authService "github.com/tradeport/keyvault/internal/auth/service"
	"github.com/tradeport/keyvault/internal/config"
	exchangesHTTP "github.com/tradeport/keyvault/internal/exchanges/http"
	exchangeMocks "github.com/tradeport/keyvault/internal/exchanges/http/mocks"
	"github.com/tradeport/keyvault/internal/metrics"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
	userHTTP "github.com/tradeport/keyvault/internal/user/http"
	userMocks "github.com/tradeport/keyvault/internal/user/http/mocks"
	vaultHTTP "github.com/tradeport/keyvault/internal/vault/http"
	vaultMocks "github.com/tradeport/keyvault/internal/vault/http/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type serverFixture struct {
	server       *Server
	tokenUseCase *authMocks.MockTokenUseCase
	tokenService authService.TokenService
}

func newServerFixture() *serverFixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokenUseCase := &authMocks.MockTokenUseCase{}
	tokenService := authService.NewTokenService()

	cfg := &config.Config{
		ServerHost:       "localhost",
		ServerPort:       8080,
		LogLevel:         "error",
		RateLimitEnabled: false,
	}

	handlers := Handlers{
		User:       userHTTP.NewUserHandler(&userMocks.MockUserUseCase{}, logger),
		Token:      authHTTP.NewTokenHandler(tokenUseCase, logger),
		Credential: vaultHTTP.NewCredentialHandler(&vaultMocks.MockCredentialUseCase{}, logger),
		Exchange:   exchangesHTTP.NewExchangeHandler(&exchangeMocks.MockExchangeUseCase{}, logger),
	}

	server := NewServer(cfg, handlers, tokenUseCase, tokenService, nil, logger)

	return &serverFixture{
		server:       server,
		tokenUseCase: tokenUseCase,
		tokenService: tokenService,
	}
}

func TestServerHealthEndpoints(t *testing.T) {
	f := newServerFixture()

	t.Run("health", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		f.server.GetHandler().ServeHTTP(recorder,
			httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response["status"])
	})

	t.Run("ready", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		f.server.GetHandler().ServeHTTP(recorder,
			httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestServerRequestID(t *testing.T) {
	f := newServerFixture()

	recorder := httptest.NewRecorder()
	f.server.GetHandler().ServeHTTP(recorder,
		httptest.NewRequest(http.MethodGet, "/health", nil))

	requestID := recorder.Header().Get("X-Request-Id")
	require.NotEmpty(t, requestID)
	_, err := uuid.Parse(requestID)
	assert.NoError(t, err)
}

func TestServerAuthenticationGate(t *testing.T) {
	t.Run("protected routes require a token", func(t *testing.T) {
		f := newServerFixture()

		for _, target := range []string{
			"/v1/credentials",
			"/v1/exchanges",
			"/v1/users/me",
		} {
			recorder := httptest.NewRecorder()
			f.server.GetHandler().ServeHTTP(recorder,
				httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusUnauthorized, recorder.Code, target)
		}
	})

	t.Run("valid token passes the gate", func(t *testing.T) {
		f := newServerFixture()
		user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), IsActive: true}

		f.tokenUseCase.On("Authenticate", mock.Anything, f.tokenService.HashToken("plain-token")).
			Return(user, nil)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer plain-token")
		f.server.GetHandler().ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), user.ID.String())
	})

	t.Run("login route is public", func(t *testing.T) {
		f := newServerFixture()

		recorder := httptest.NewRecorder()
		f.server.GetHandler().ServeHTTP(recorder,
			httptest.NewRequest(http.MethodPost, "/v1/auth/token", nil))

		// Reaches the handler (fails on the empty body), not the auth gate.
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestServerNoMetricsEndpoint(t *testing.T) {
	f := newServerFixture()

	recorder := httptest.NewRecorder()
	f.server.GetHandler().ServeHTTP(recorder,
		httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMetricsServerEndpoint(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := metrics.NewProvider("keyvault_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)
	require.NotNil(t, metricsServer)

	recorder := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(recorder,
		httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/plain")
}
