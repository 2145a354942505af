package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/sabasm/user/internal/pkg"
)

// Recovery returns a gin middleware that recovers from panics, logs the value
// with a stack trace, and responds with the standard JSON envelope:
//
//	{"code": 500, "message": "internal server error", "data": null}
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}

			logger.ErrorContext(c.Request.Context(), "panic recovered",
				slog.Any("panic", err),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("stack", string(debug.Stack())),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, pkg.Response{
				Code:    http.StatusInternalServerError,
				Message: "internal server error",
			})
		}()
		c.Next()
	}
}
