package middleware

import (
	"log/slog"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/simp-lee/logger"
)

const (
	requestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
)

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// RequestIDConfig controls request-id reuse behavior.
type RequestIDConfig struct {
	TrustUpstream bool
}

// RequestID returns a gin middleware that assigns a fresh UUID to every request.
//
// The request ID is:
//   - Stored in gin.Context under the key "request_id"
//   - Set as the X-Request-ID response header
//   - Attached to the request context via logger.WithContextAttrs
func RequestID() gin.HandlerFunc {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig is RequestID with options. When TrustUpstream is set, a
// well-formed incoming X-Request-ID is reused instead of generating one.
func RequestIDWithConfig(cfg RequestIDConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id string
		if cfg.TrustUpstream {
			if upstream := c.GetHeader(requestIDHeader); requestIDPattern.MatchString(upstream) {
				id = upstream
			}
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDContextKey, id)
		c.Header(requestIDHeader, id)

		ctx := logger.WithContextAttrs(c.Request.Context(), slog.String(requestIDContextKey, id))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID returns the request ID stored on c, or "" if none is set.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
