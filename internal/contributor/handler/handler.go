// Package handler provides HTTP handlers for contributor endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/starbounty/bounty-service/internal/contributor/model"
	"github.com/starbounty/bounty-service/internal/contributor/service"
	"github.com/starbounty/bounty-service/internal/middleware"
)

// Handler handles HTTP requests for contributor endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new contributor handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ErrorResponse is the error envelope for contributor endpoints.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a machine-readable code and a human-readable message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorResponse(c *gin.Context, code, message string, status int) {
	c.JSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// Register handles POST /users/register.
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		h.logger.Errorw("error registering contributor", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Profile handles GET /users/me.
func (h *Handler) Profile(c *gin.Context) {
	resp, err := h.service.Profile(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		if errors.Is(err, model.ErrContributorNotFound) {
			errorResponse(c, "NOT_FOUND", "user not found", http.StatusNotFound)
			return
		}
		h.logger.Errorw("error fetching profile", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// BindWallet handles POST /users/wallet.
func (h *Handler) BindWallet(c *gin.Context) {
	var req model.BindWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "address is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.BindWallet(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidWalletAddress):
			errorResponse(c, "INVALID_REQUEST", "address is required", http.StatusBadRequest)
		case errors.Is(err, model.ErrWalletAlreadyBound):
			errorResponse(c, "WALLET_ALREADY_BOUND", "wallet address already bound", http.StatusConflict)
		case errors.Is(err, model.ErrContributorNotFound):
			errorResponse(c, "NOT_FOUND", "user not found", http.StatusNotFound)
		default:
			h.logger.Errorw("error binding wallet", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MyBounties handles GET /users/me/bounties.
func (h *Handler) MyBounties(c *gin.Context) {
	resp, err := h.service.MyBounties(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		if errors.Is(err, model.ErrContributorNotFound) {
			errorResponse(c, "NOT_FOUND", "user not found", http.StatusNotFound)
			return
		}
		h.logger.Errorw("error listing contributor bounties", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
