package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jvfernandez09/jfc-app/internal/infra/logger"
)

const (
	requestIDHeader = "X-Request-ID"

	// RequestIDKey is the gin context key for the correlation identifier.
	RequestIDKey = "request_id"
	// UserIDKey is the gin context key for the authenticated user id.
	UserIDKey = "user_id"
	// SessionClaimsKey is the gin context key for the decoded session claims.
	SessionClaimsKey = "session_claims"
)

// RequestID injects a correlation identifier into the gin context, the
// request context, and the response headers. Inbound identifiers are honored
// so upstream proxies can correlate.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Set(RequestIDKey, reqID)
		c.Writer.Header().Set(requestIDHeader, reqID)

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey{}, reqID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID retrieves the correlation identifier from the gin context.
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(RequestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
