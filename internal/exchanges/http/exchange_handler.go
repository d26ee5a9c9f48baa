// Package http provides HTTP handlers for exchange venue operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tradeport/keyvault/internal/exchanges/http/dto"
	"github.com/tradeport/keyvault/internal/exchanges/usecase"
	"github.com/tradeport/keyvault/internal/httputil"
	customValidation "github.com/tradeport/keyvault/internal/validation"
)

// ExchangeHandler handles HTTP requests for exchange venue operations.
type ExchangeHandler struct {
	exchangeUseCase usecase.ExchangeUseCase
	logger          *slog.Logger
}

// NewExchangeHandler creates a new exchange handler with required dependencies.
func NewExchangeHandler(exchangeUseCase usecase.ExchangeUseCase, logger *slog.Logger) *ExchangeHandler {
	return &ExchangeHandler{
		exchangeUseCase: exchangeUseCase,
		logger:          logger,
	}
}

// CreateExchangeHandler registers a new exchange venue.
// POST /v1/exchanges - requires authentication.
func (h *ExchangeHandler) CreateExchangeHandler(c *gin.Context) {
	var req dto.CreateExchangeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	exchange, err := h.exchangeUseCase.Create(c.Request.Context(), &usecase.CreateExchangeInput{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		BaseURL:     req.BaseURL,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeResponse(exchange))
}

// GetExchangeHandler returns a single exchange venue by ID.
// GET /v1/exchanges/:id
func (h *ExchangeHandler) GetExchangeHandler(c *gin.Context) {
	exchangeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c,
			fmt.Errorf("invalid exchange id: must be a valid UUID"), h.logger)
		return
	}

	exchange, err := h.exchangeUseCase.Get(c.Request.Context(), exchangeID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeResponse(exchange))
}

// ListExchangesHandler returns registered exchange venues.
// GET /v1/exchanges
func (h *ExchangeHandler) ListExchangesHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	exchanges, err := h.exchangeUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeListResponse(exchanges, offset, limit))
}
