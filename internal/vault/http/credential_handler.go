// Package http provides HTTP handlers for credential vault operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/tradeport/keyvault/internal/auth/http"
	apperrors "github.com/tradeport/keyvault/internal/errors"
	"github.com/tradeport/keyvault/internal/httputil"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
	"github.com/tradeport/keyvault/internal/vault/http/dto"
	"github.com/tradeport/keyvault/internal/vault/usecase"
	customValidation "github.com/tradeport/keyvault/internal/validation"
)

// CredentialHandler handles HTTP requests for credential vault operations.
// All routes require authentication; the user is taken from the request
// context set by the auth middleware.
type CredentialHandler struct {
	credentialUseCase usecase.CredentialUseCase
	logger            *slog.Logger
}

// NewCredentialHandler creates a new credential handler with required dependencies.
func NewCredentialHandler(
	credentialUseCase usecase.CredentialUseCase,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		credentialUseCase: credentialUseCase,
		logger:            logger,
	}
}

func (h *CredentialHandler) currentUser(c *gin.Context) (*userDomain.User, bool) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return nil, false
	}
	return user, true
}

func (h *CredentialHandler) credentialID(c *gin.Context) (uuid.UUID, bool) {
	credentialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c,
			fmt.Errorf("invalid credential id: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}
	return credentialID, true
}

// StoreCredentialHandler stores a new encrypted credential pair.
// POST /v1/credentials
func (h *CredentialHandler) StoreCredentialHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.StoreCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	exchangeID, err := uuid.Parse(req.ExchangeID)
	if err != nil {
		httputil.HandleBadRequestGin(c,
			fmt.Errorf("invalid exchange_id: must be a valid UUID"), h.logger)
		return
	}

	record, err := h.credentialUseCase.Store(c.Request.Context(), &usecase.StoreCredentialInput{
		UserID:     user.ID,
		ExchangeID: exchangeID,
		Name:       req.Name,
		APIKey:     req.APIKey,
		SecretKey:  req.SecretKey,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCredentialResponse(record))
}

// GetCredentialHandler returns credential metadata without decryption.
// GET /v1/credentials/:id
func (h *CredentialHandler) GetCredentialHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	credentialID, ok := h.credentialID(c)
	if !ok {
		return
	}

	record, err := h.credentialUseCase.Get(c.Request.Context(), user.ID, credentialID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCredentialResponse(record))
}

// RevealCredentialHandler decrypts and returns the credential pair.
// POST /v1/credentials/:id/reveal
func (h *CredentialHandler) RevealCredentialHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	credentialID, ok := h.credentialID(c)
	if !ok {
		return
	}

	record, credentials, err := h.credentialUseCase.Reveal(c.Request.Context(), user.ID, credentialID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer credentials.Zero()

	c.JSON(http.StatusOK, dto.RevealCredentialResponse{
		Credential: dto.ToCredentialResponse(record),
		APIKey:     credentials.APIKey,
		SecretKey:  credentials.SecretKey,
	})
}

// UpdateCredentialHandler rotates the credential pair in place.
// PUT /v1/credentials/:id
func (h *CredentialHandler) UpdateCredentialHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	credentialID, ok := h.credentialID(c)
	if !ok {
		return
	}

	var req dto.UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.credentialUseCase.Update(
		c.Request.Context(), user.ID, credentialID, req.APIKey, req.SecretKey)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCredentialResponse(record))
}

// DeleteCredentialHandler permanently removes a credential record.
// DELETE /v1/credentials/:id
func (h *CredentialHandler) DeleteCredentialHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	credentialID, ok := h.credentialID(c)
	if !ok {
		return
	}

	if err := h.credentialUseCase.Delete(c.Request.Context(), user.ID, credentialID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetCredentialActiveHandler toggles whether the credential may build clients.
// PATCH /v1/credentials/:id/active
func (h *CredentialHandler) SetCredentialActiveHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	credentialID, ok := h.credentialID(c)
	if !ok {
		return
	}

	var req dto.SetCredentialActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.credentialUseCase.SetActive(
		c.Request.Context(), user.ID, credentialID, *req.IsActive)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCredentialResponse(record))
}

// ListCredentialsHandler returns the caller's credential records.
// GET /v1/credentials
func (h *CredentialHandler) ListCredentialsHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	records, err := h.credentialUseCase.List(c.Request.Context(), user.ID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCredentialListResponse(records, offset, limit))
}

// VerifyCredentialHandler builds the exchange client for the credential to
// confirm it is usable. The decrypted pair never leaves the server.
// POST /v1/credentials/:id/verify
func (h *CredentialHandler) VerifyCredentialHandler(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	credentialID, ok := h.credentialID(c)
	if !ok {
		return
	}

	apiClient, err := h.credentialUseCase.BuildClient(c.Request.Context(), user.ID, credentialID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exchange": apiClient.Name(),
		"base_url": apiClient.BaseURL(),
		"usable":   true,
	})
}
