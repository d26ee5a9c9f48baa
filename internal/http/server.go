package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/tradeport/keyvault/internal/auth/http"
	authService "github.com/tradeport/keyvault/internal/auth/service"
	authUseCase "github.com/tradeport/keyvault/internal/auth/usecase"
	"github.com/tradeport/keyvault/internal/config"
	exchangesHTTP "github.com/tradeport/keyvault/internal/exchanges/http"
	"github.com/tradeport/keyvault/internal/metrics"
	userHTTP "github.com/tradeport/keyvault/internal/user/http"
	vaultHTTP "github.com/tradeport/keyvault/internal/vault/http"
)

// Handlers bundles the route handlers mounted on the API server.
type Handlers struct {
	User       *userHTTP.UserHandler
	Token      *authHTTP.TokenHandler
	Credential *vaultHTTP.CredentialHandler
	Exchange   *exchangesHTTP.ExchangeHandler
}

// Server is the main API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates the API server with all middleware and routes wired.
func NewServer(
	cfg *config.Config,
	handlers Handlers,
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
	logger *slog.Logger,
) *Server {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(CustomLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	registerRoutes(router, cfg, handlers, tokenUseCase, tokenService, logger)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router: router,
		logger: logger,
	}
}

func registerRoutes(
	router *gin.Engine,
	cfg *config.Config,
	handlers Handlers,
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	v1 := router.Group("/v1")

	// Public endpoints: registration and login.
	v1.POST("/users", handlers.User.RegisterUserHandler)
	v1.POST("/auth/token", handlers.Token.IssueTokenHandler)

	// Everything else requires a bearer token.
	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(tokenUseCase, tokenService, logger))
	if cfg.RateLimitEnabled {
		authenticated.Use(authHTTP.RateLimitMiddleware(
			cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}

	authenticated.GET("/users/me", handlers.User.GetCurrentUserHandler)
	authenticated.DELETE("/auth/token", handlers.Token.RevokeTokenHandler)

	authenticated.POST("/exchanges", handlers.Exchange.CreateExchangeHandler)
	authenticated.GET("/exchanges", handlers.Exchange.ListExchangesHandler)
	authenticated.GET("/exchanges/:id", handlers.Exchange.GetExchangeHandler)

	authenticated.POST("/credentials", handlers.Credential.StoreCredentialHandler)
	authenticated.GET("/credentials", handlers.Credential.ListCredentialsHandler)
	authenticated.GET("/credentials/:id", handlers.Credential.GetCredentialHandler)
	authenticated.POST("/credentials/:id/reveal", handlers.Credential.RevealCredentialHandler)
	authenticated.PUT("/credentials/:id", handlers.Credential.UpdateCredentialHandler)
	authenticated.DELETE("/credentials/:id", handlers.Credential.DeleteCredentialHandler)
	authenticated.PATCH("/credentials/:id/active", handlers.Credential.SetCredentialActiveHandler)
	authenticated.POST("/credentials/:id/verify", handlers.Credential.VerifyCredentialHandler)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
