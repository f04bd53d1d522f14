// Package handler provides HTTP handlers for bounty endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/starbounty/bounty-service/internal/bounty/model"
	"github.com/starbounty/bounty-service/internal/bounty/service"
	"github.com/starbounty/bounty-service/internal/github"
	"github.com/starbounty/bounty-service/internal/middleware"
)

// Handler handles HTTP requests for bounty endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new bounty handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /bounties.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateBountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		if errors.Is(err, model.ErrMissingFields) {
			errorResponse(c, "INVALID_REQUEST", "missing required fields", http.StatusBadRequest)
			return
		}
		if errors.Is(err, model.ErrBountyExists) {
			errorResponse(c, "BOUNTY_EXISTS", "bounty already exists for issue", http.StatusConflict)
			return
		}
		h.logger.Errorw("error creating bounty", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /bounties/:id.
func (h *Handler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, model.ErrBountyNotFound) {
			notFoundResponse(c, "bounty not found")
			return
		}
		if errors.Is(err, model.ErrInvalidBountyID) {
			errorResponse(c, "INVALID_REQUEST", "bounty id is required", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error fetching bounty", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List handles GET /bounties.
func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error listing bounties", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Progress handles POST /bounties/:id/progress.
// Upstream API failures propagate their status code to the caller.
func (h *Handler) Progress(c *gin.Context) {
	resp, err := h.service.Progress(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, model.ErrInvalidBountyID) {
			errorResponse(c, "INVALID_REQUEST", "bounty id is required", http.StatusBadRequest)
			return
		}
		if errors.Is(err, model.ErrBountyNotFound) {
			notFoundResponse(c, "bounty not found")
			return
		}
		var fetchErr *github.FetchError
		if errors.As(err, &fetchErr) {
			errorResponse(c, "UPSTREAM_ERROR", "failed to fetch issue details", fetchErr.StatusCode)
			return
		}
		h.logger.Errorw("error reconciling bounty", "bounty_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FundEscrow handles POST /escrow/fund.
func (h *Handler) FundEscrow(c *gin.Context) {
	var req model.FundEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		escrowError(c, http.StatusBadRequest, "Missing params")
		return
	}

	resp, err := h.service.FundEscrow(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMissingFields):
			escrowError(c, http.StatusBadRequest, "Missing params")
		case errors.Is(err, model.ErrBountyNotFound):
			escrowError(c, http.StatusNotFound, "Bounty not found")
		case errors.Is(err, model.ErrEscrowAlreadyCreated):
			escrowError(c, http.StatusBadRequest, "Escrow already created")
		case errors.Is(err, model.ErrEscrowRejected):
			escrowError(c, http.StatusInternalServerError, rejectionMessage(resp))
		default:
			h.logger.Errorw("error funding escrow", "error", err)
			escrowError(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ReleaseEscrow handles POST /escrow/release.
func (h *Handler) ReleaseEscrow(c *gin.Context) {
	var req model.ReleaseEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		escrowError(c, http.StatusBadRequest, "Missing bountyId")
		return
	}

	resp, err := h.service.ReleaseEscrow(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMissingFields):
			escrowError(c, http.StatusBadRequest, "Missing bountyId")
		case errors.Is(err, model.ErrEscrowNotFound):
			escrowError(c, http.StatusNotFound, "Escrow not found for bounty")
		case errors.Is(err, model.ErrEscrowRejected):
			escrowError(c, http.StatusInternalServerError, rejectionMessage(resp))
		default:
			h.logger.Errorw("error releasing escrow", "error", err)
			escrowError(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
