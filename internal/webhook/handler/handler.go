// Package handler receives GitHub webhook deliveries.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/starbounty/bounty-service/internal/webhook/model"
	"github.com/starbounty/bounty-service/internal/webhook/service"
)

// Handler handles inbound GitHub webhook requests.
type Handler struct {
	service service.Service
	secret  string
	logger  *zap.SugaredLogger
}

// New creates a new webhook handler instance.
func New(svc service.Service, secret string, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, secret: secret, logger: logger}
}

// Handle handles POST /webhooks/github.
//
// The signature is verified against the raw body before any parsing. GitHub
// retries non-2xx deliveries, so processing failures after a valid signature
// still acknowledge with 200.
func (h *Handler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_PAYLOAD", "message": "could not read request body"}})
		return
	}

	if !service.VerifySignature(h.secret, body, c.GetHeader("X-Hub-Signature-256")) {
		h.logger.Warnw("webhook signature mismatch", "delivery_id", c.GetHeader("X-GitHub-Delivery"))
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "INVALID_SIGNATURE", "message": "signature verification failed"}})
		return
	}

	if c.GetHeader("X-GitHub-Event") != "pull_request" {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	var event model.PullRequestEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_PAYLOAD", "message": "could not parse event payload"}})
		return
	}

	if err := h.service.HandlePullRequest(c.Request.Context(), &event); err != nil {
		if errors.Is(err, model.ErrNoLinkedBounty) {
			h.logger.Debugw("webhook delivery without linked bounty",
				"delivery_id", c.GetHeader("X-GitHub-Delivery"),
				"action", event.Action,
			)
		} else {
			h.logger.Errorw("error processing webhook delivery",
				"delivery_id", c.GetHeader("X-GitHub-Delivery"),
				"action", event.Action,
				"error", err,
			)
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
