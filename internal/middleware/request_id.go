package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key holding the request ID.
	RequestIDKey = "request_id"
	// RequestIDHeader carries the request ID in and out.
	RequestIDHeader = "X-Request-ID"
	// CorrelationIDHeader is accepted when a proxy sets it instead of X-Request-ID.
	CorrelationIDHeader = "X-Correlation-ID"
)

// inboundRequestID returns the first upstream ID that parses as a UUID,
// normalised to its canonical lowercase form.
func inboundRequestID(c *gin.Context) (string, bool) {
	for _, header := range []string{RequestIDHeader, CorrelationIDHeader} {
		raw := strings.TrimSpace(c.GetHeader(header))
		if raw == "" {
			continue
		}
		if id, err := uuid.Parse(raw); err == nil {
			return id.String(), true
		}
	}
	return "", false
}

// RequestID assigns every request an ID, reusing a well-formed upstream one.
// The ID is stored under RequestIDKey and echoed in X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := inboundRequestID(c)
		if !ok {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request ID, or "" outside the RequestID middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
