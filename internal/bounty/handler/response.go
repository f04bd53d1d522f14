package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/starbounty/bounty-service/internal/bounty/model"
)

// ErrorResponse is the error envelope for bounty endpoints.
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

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, "NOT_FOUND", message, http.StatusNotFound)
}

// escrowError is the {ok:false, error} envelope used by the escrow endpoints.
func escrowError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"ok": false, "error": message})
}

// rejectionMessage extracts the gateway's error text from a rejected escrow
// response, tolerating a missing response.
func rejectionMessage(resp *model.EscrowResponse) string {
	if resp == nil || resp.Error == "" {
		return "escrow transaction rejected"
	}
	return resp.Error
}
