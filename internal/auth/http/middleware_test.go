package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/tradeport/keyvault/internal/auth/domain"
	"github.com/tradeport/keyvault/internal/auth/http/mocks"
	authService "github.com/tradeport/keyvault/internal/auth/service"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthRouter(tokenUseCase *mocks.MockTokenUseCase) (*gin.Engine, authService.TokenService) {
	gin.SetMode(gin.TestMode)
	tokenService := authService.NewTokenService()

	router := gin.New()
	router.Use(AuthenticationMiddleware(tokenUseCase, tokenService, testLogger()))
	router.GET("/protected", func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID.String()})
	})

	return router, tokenService
}

func TestAuthenticationMiddleware(t *testing.T) {
	t.Run("authenticates a valid bearer token", func(t *testing.T) {
		tokenUseCase := &mocks.MockTokenUseCase{}
		router, tokenService := newAuthRouter(tokenUseCase)

		user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), IsActive: true}
		tokenUseCase.On("Authenticate", mock.Anything, tokenService.HashToken("plain-token")).
			Return(user, nil)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer plain-token")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), user.ID.String())
	})

	t.Run("bearer prefix is case-insensitive", func(t *testing.T) {
		tokenUseCase := &mocks.MockTokenUseCase{}
		router, tokenService := newAuthRouter(tokenUseCase)

		user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), IsActive: true}
		tokenUseCase.On("Authenticate", mock.Anything, tokenService.HashToken("plain-token")).
			Return(user, nil)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bEaReR plain-token")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		tokenUseCase := &mocks.MockTokenUseCase{}
		router, _ := newAuthRouter(tokenUseCase)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		tokenUseCase.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("malformed header is unauthorized", func(t *testing.T) {
		tokenUseCase := &mocks.MockTokenUseCase{}
		router, _ := newAuthRouter(tokenUseCase)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		tokenUseCase := &mocks.MockTokenUseCase{}
		router, _ := newAuthRouter(tokenUseCase)

		tokenUseCase.On("Authenticate", mock.Anything, mock.AnythingOfType("string")).
			Return(nil, authDomain.ErrInvalidToken)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("inactive user is forbidden", func(t *testing.T) {
		tokenUseCase := &mocks.MockTokenUseCase{}
		router, _ := newAuthRouter(tokenUseCase)

		tokenUseCase.On("Authenticate", mock.Anything, mock.AnythingOfType("string")).
			Return(nil, userDomain.ErrUserInactive)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer plain-token")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(rps float64, burst int) *gin.Engine {
		user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), IsActive: true}
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
			c.Next()
		})
		router.Use(RateLimitMiddleware(rps, burst, testLogger()))
		router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	t.Run("allows requests within the burst", func(t *testing.T) {
		router := newRouter(10, 5)
		for i := 0; i < 5; i++ {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))
			assert.Equal(t, http.StatusOK, recorder.Code)
		}
	})

	t.Run("rejects requests over the burst", func(t *testing.T) {
		router := newRouter(0.001, 1)

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, first.Code)

		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.NotEmpty(t, second.Header().Get("Retry-After"))
	})

	t.Run("rejects unauthenticated requests", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimitMiddleware(10, 5, testLogger()))
		router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
