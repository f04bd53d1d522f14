package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CallerIDKey is the gin context key holding the authenticated caller id.
const CallerIDKey = "caller_id"

// CallerIDHeader carries the identity-provider user id, set by the gateway
// after session verification. The service trusts it as-is.
const CallerIDHeader = "X-User-ID"

// Auth returns a middleware that requires an authenticated caller.
// Requests without a caller id are rejected with 401 before the handler runs.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.GetHeader(CallerIDHeader)
		if callerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "missing caller identity",
				},
			})
			return
		}

		c.Set(CallerIDKey, callerID)
		c.Next()
	}
}

// CallerID returns the authenticated caller id from the gin context.
func CallerID(c *gin.Context) string {
	return c.GetString(CallerIDKey)
}
