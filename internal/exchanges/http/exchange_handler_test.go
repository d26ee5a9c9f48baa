package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
	"github.com/tradeport/keyvault/internal/exchanges/http/mocks"
	"github.com/tradeport/keyvault/internal/exchanges/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(exchangeUseCase *mocks.MockExchangeUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewExchangeHandler(exchangeUseCase, testLogger())
	router.POST("/v1/exchanges", handler.CreateExchangeHandler)
	router.GET("/v1/exchanges", handler.ListExchangesHandler)
	router.GET("/v1/exchanges/:id", handler.GetExchangeHandler)
	return router
}

func newTestExchange() *exchangesDomain.Exchange {
	return &exchangesDomain.Exchange{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        "binance",
		DisplayName: "Binance",
		BaseURL:     "https://api.binance.com",
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestCreateExchangeHandler(t *testing.T) {
	t.Run("registers a venue", func(t *testing.T) {
		exchangeUseCase := &mocks.MockExchangeUseCase{}
		router := newRouter(exchangeUseCase)
		exchange := newTestExchange()

		exchangeUseCase.On("Create", mock.Anything, &usecase.CreateExchangeInput{
			Name:        "binance",
			DisplayName: "Binance",
			BaseURL:     "https://api.binance.com",
		}).Return(exchange, nil)

		body, _ := json.Marshal(map[string]string{
			"name":         "binance",
			"display_name": "Binance",
			"base_url":     "https://api.binance.com",
		})

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/exchanges", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "binance")
	})

	t.Run("rejects invalid venue name", func(t *testing.T) {
		exchangeUseCase := &mocks.MockExchangeUseCase{}
		router := newRouter(exchangeUseCase)

		body, _ := json.Marshal(map[string]string{
			"name":         "Binance Exchange!",
			"display_name": "Binance",
		})

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/exchanges", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		exchangeUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps unsupported venue to 422", func(t *testing.T) {
		exchangeUseCase := &mocks.MockExchangeUseCase{}
		router := newRouter(exchangeUseCase)

		exchangeUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, exchangesDomain.ErrUnsupportedExchange)

		body, _ := json.Marshal(map[string]string{
			"name":         "mtgox",
			"display_name": "Mt. Gox",
		})

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/exchanges", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestGetExchangeHandler(t *testing.T) {
	t.Run("returns the venue", func(t *testing.T) {
		exchangeUseCase := &mocks.MockExchangeUseCase{}
		router := newRouter(exchangeUseCase)
		exchange := newTestExchange()

		exchangeUseCase.On("Get", mock.Anything, exchange.ID).Return(exchange, nil)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder,
			httptest.NewRequest(http.MethodGet, "/v1/exchanges/"+exchange.ID.String(), nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), exchange.ID.String())
	})

	t.Run("maps missing venue to 404", func(t *testing.T) {
		exchangeUseCase := &mocks.MockExchangeUseCase{}
		router := newRouter(exchangeUseCase)
		exchangeID := uuid.Must(uuid.NewV7())

		exchangeUseCase.On("Get", mock.Anything, exchangeID).
			Return(nil, exchangesDomain.ErrExchangeNotFound)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder,
			httptest.NewRequest(http.MethodGet, "/v1/exchanges/"+exchangeID.String(), nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		exchangeUseCase := &mocks.MockExchangeUseCase{}
		router := newRouter(exchangeUseCase)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder,
			httptest.NewRequest(http.MethodGet, "/v1/exchanges/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestListExchangesHandler(t *testing.T) {
	exchangeUseCase := &mocks.MockExchangeUseCase{}
	router := newRouter(exchangeUseCase)

	first := newTestExchange()
	second := newTestExchange()
	second.Name = "kraken"

	exchangeUseCase.On("List", mock.Anything, 0, 50).
		Return([]*exchangesDomain.Exchange{first, second}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/exchanges", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Len(t, response["exchanges"], 2)
}
