// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authHTTP "github.com/tradeport/keyvault/internal/auth/http"
	authRepository "github.com/tradeport/keyvault/internal/auth/repository"
	authService "github.com/tradeport/keyvault/internal/auth/service"
	authUsecase "github.com/tradeport/keyvault/internal/auth/usecase"
	"github.com/tradeport/keyvault/internal/config"
	cryptoDomain "github.com/tradeport/keyvault/internal/crypto/domain"
	cryptoService "github.com/tradeport/keyvault/internal/crypto/service"
	"github.com/tradeport/keyvault/internal/database"
	exchangesHTTP "github.com/tradeport/keyvault/internal/exchanges/http"
	exchangesRepository "github.com/tradeport/keyvault/internal/exchanges/repository"
	exchangesUsecase "github.com/tradeport/keyvault/internal/exchanges/usecase"
	"github.com/tradeport/keyvault/internal/http"
	"github.com/tradeport/keyvault/internal/metrics"
	userHTTP "github.com/tradeport/keyvault/internal/user/http"
	userRepository "github.com/tradeport/keyvault/internal/user/repository"
	userUsecase "github.com/tradeport/keyvault/internal/user/usecase"
	vaultHTTP "github.com/tradeport/keyvault/internal/vault/http"
	vaultRepository "github.com/tradeport/keyvault/internal/vault/repository"
	vaultUsecase "github.com/tradeport/keyvault/internal/vault/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers and services
	txManager        database.TxManager
	masterKey        *cryptoDomain.MasterKey
	credentialCipher cryptoService.CredentialCipher
	tokenService     authService.TokenService

	// Repositories
	userRepo       userUsecase.UserRepository
	tokenRepo      authUsecase.TokenRepository
	exchangeRepo   exchangesUsecase.ExchangeRepository
	credentialRepo vaultUsecase.CredentialRepository

	// Use Cases
	userUseCase       userUsecase.UserUseCase
	tokenUseCase      authUsecase.TokenUseCase
	exchangeUseCase   exchangesUsecase.ExchangeUseCase
	credentialUseCase vaultUsecase.CredentialUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	txManagerInit         sync.Once
	masterKeyInit         sync.Once
	credentialCipherInit  sync.Once
	tokenServiceInit      sync.Once
	userRepoInit          sync.Once
	tokenRepoInit         sync.Once
	exchangeRepoInit      sync.Once
	credentialRepoInit    sync.Once
	userUseCaseInit       sync.Once
	tokenUseCaseInit      sync.Once
	exchangeUseCaseInit   sync.Once
	credentialUseCaseInit sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		var err error
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are
// disabled in configuration.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		var err error
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op
// implementation is returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		var err error
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		var err error
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MasterKey returns the master encryption key loaded from the environment.
// A missing or malformed key is reported on first access, before any
// credential can be sealed or opened.
func (c *Container) MasterKey() (*cryptoDomain.MasterKey, error) {
	c.masterKeyInit.Do(func() {
		var err error
		c.masterKey, err = cryptoDomain.LoadMasterKeyFromEnv()
		if err != nil {
			c.initErrors["masterKey"] = err
		}
	})
	if storedErr, exists := c.initErrors["masterKey"]; exists {
		return nil, storedErr
	}
	return c.masterKey, nil
}

// CredentialCipher returns the cipher used to seal and open credential pairs.
func (c *Container) CredentialCipher() (cryptoService.CredentialCipher, error) {
	c.credentialCipherInit.Do(func() {
		var err error
		c.credentialCipher, err = c.initCredentialCipher()
		if err != nil {
			c.initErrors["credentialCipher"] = err
		}
	})
	if storedErr, exists := c.initErrors["credentialCipher"]; exists {
		return nil, storedErr
	}
	return c.credentialCipher, nil
}

// TokenService returns the token generation and hashing service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (userUsecase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		var err error
		c.userRepo, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
		}
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// TokenRepository returns the token repository instance.
func (c *Container) TokenRepository() (authUsecase.TokenRepository, error) {
	c.tokenRepoInit.Do(func() {
		var err error
		c.tokenRepo, err = c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepo"] = err
		}
	})
	if storedErr, exists := c.initErrors["tokenRepo"]; exists {
		return nil, storedErr
	}
	return c.tokenRepo, nil
}

// ExchangeRepository returns the exchange repository instance.
func (c *Container) ExchangeRepository() (exchangesUsecase.ExchangeRepository, error) {
	c.exchangeRepoInit.Do(func() {
		var err error
		c.exchangeRepo, err = c.initExchangeRepository()
		if err != nil {
			c.initErrors["exchangeRepo"] = err
		}
	})
	if storedErr, exists := c.initErrors["exchangeRepo"]; exists {
		return nil, storedErr
	}
	return c.exchangeRepo, nil
}

// CredentialRepository returns the credential repository instance.
func (c *Container) CredentialRepository() (vaultUsecase.CredentialRepository, error) {
	c.credentialRepoInit.Do(func() {
		var err error
		c.credentialRepo, err = c.initCredentialRepository()
		if err != nil {
			c.initErrors["credentialRepo"] = err
		}
	})
	if storedErr, exists := c.initErrors["credentialRepo"]; exists {
		return nil, storedErr
	}
	return c.credentialRepo, nil
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUsecase.UserUseCase, error) {
	c.userUseCaseInit.Do(func() {
		var err error
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// TokenUseCase returns the token use case instance.
func (c *Container) TokenUseCase() (authUsecase.TokenUseCase, error) {
	c.tokenUseCaseInit.Do(func() {
		var err error
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// ExchangeUseCase returns the exchange use case instance.
func (c *Container) ExchangeUseCase() (exchangesUsecase.ExchangeUseCase, error) {
	c.exchangeUseCaseInit.Do(func() {
		var err error
		c.exchangeUseCase, err = c.initExchangeUseCase()
		if err != nil {
			c.initErrors["exchangeUseCase"] = err
		}
	})
	if storedErr, exists := c.initErrors["exchangeUseCase"]; exists {
		return nil, storedErr
	}
	return c.exchangeUseCase, nil
}

// CredentialUseCase returns the credential vault use case instance.
func (c *Container) CredentialUseCase() (vaultUsecase.CredentialUseCase, error) {
	c.credentialUseCaseInit.Do(func() {
		var err error
		c.credentialUseCase, err = c.initCredentialUseCase()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
		}
	})
	if storedErr, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}

// HTTPServer returns the API HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		var err error
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics HTTP server instance, or nil when metrics
// are disabled in configuration.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		var err error
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP servers if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Flush and release the metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Wipe the master key from memory
	if c.masterKey != nil {
		c.masterKey.Close()
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initMetricsProvider creates the metrics provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initCredentialCipher creates the credential cipher keyed with the master key.
func (c *Container) initCredentialCipher() (cryptoService.CredentialCipher, error) {
	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key for credential cipher: %w", err)
	}

	cipher, err := cryptoService.NewCredentialCipher(
		cryptoService.NewAEADManager(),
		masterKey,
		cryptoDomain.AESGCM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential cipher: %w", err)
	}
	return cipher, nil
}

// initUserRepository creates the user repository instance.
func (c *Container) initUserRepository() (userUsecase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return userRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenRepository creates the token repository instance.
func (c *Container) initTokenRepository() (authUsecase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLTokenRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initExchangeRepository creates the exchange repository instance.
func (c *Container) initExchangeRepository() (exchangesUsecase.ExchangeRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for exchange repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return exchangesRepository.NewMySQLExchangeRepository(db), nil
	case "postgres":
		return exchangesRepository.NewPostgreSQLExchangeRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCredentialRepository creates the credential repository instance.
func (c *Container) initCredentialRepository() (vaultUsecase.CredentialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return vaultRepository.NewMySQLCredentialRepository(db), nil
	case "postgres":
		return vaultRepository.NewPostgreSQLCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserUseCase creates the user use case with all its dependencies.
func (c *Container) initUserUseCase() (userUsecase.UserUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	useCase, err := userUsecase.NewUserUseCase(userRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to create user use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
	}

	return userUsecase.NewUserUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (authUsecase.TokenUseCase, error) {
	users, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for token use case: %w", err)
	}

	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
	}

	useCase := authUsecase.NewTokenUseCase(c.config, users, tokenRepo, c.TokenService())

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
	}

	return authUsecase.NewTokenUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initExchangeUseCase creates the exchange use case with all its dependencies.
func (c *Container) initExchangeUseCase() (exchangesUsecase.ExchangeUseCase, error) {
	exchangeRepo, err := c.ExchangeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange repository for exchange use case: %w", err)
	}

	useCase := exchangesUsecase.NewExchangeUseCase(exchangeRepo)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for exchange use case: %w", err)
	}

	return exchangesUsecase.NewExchangeUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initCredentialUseCase creates the credential vault use case with all its dependencies.
func (c *Container) initCredentialUseCase() (vaultUsecase.CredentialUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for credential use case: %w", err)
	}

	credentialRepo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for credential use case: %w", err)
	}

	exchangeRepo, err := c.ExchangeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange repository for credential use case: %w", err)
	}

	cipher, err := c.CredentialCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential cipher for credential use case: %w", err)
	}

	useCase := vaultUsecase.NewCredentialUseCase(txManager, credentialRepo, exchangeRepo, cipher)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for credential use case: %w", err)
	}

	return vaultUsecase.NewCredentialUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initHTTPServer creates the API HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for http server: %w", err)
	}

	exchangeUseCase, err := c.ExchangeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange use case for http server: %w", err)
	}

	credentialUseCase, err := c.CredentialUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	handlers := http.Handlers{
		User:       userHTTP.NewUserHandler(userUseCase, logger),
		Token:      authHTTP.NewTokenHandler(tokenUseCase, logger),
		Credential: vaultHTTP.NewCredentialHandler(credentialUseCase, logger),
		Exchange:   exchangesHTTP.NewExchangeHandler(exchangeUseCase, logger),
	}

	server := http.NewServer(
		c.config,
		handlers,
		tokenUseCase,
		c.TokenService(),
		metricsProvider,
		logger,
	)

	return server, nil
}

// initMetricsServer creates the metrics HTTP server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	if metricsProvider == nil {
		return nil, nil
	}

	server := http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		metricsProvider,
	)

	return server, nil
}
