package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sabasm/user/internal/pkg"
)

// renderError aborts the request with the standard JSON envelope. An empty
// message is replaced by the lower-cased status text.
func renderError(c *gin.Context, code int, message string) {
	if message == "" {
		message = statusMessage(code)
	}
	c.AbortWithStatusJSON(code, pkg.Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// statusMessage returns a short label for common error codes.
func statusMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusNotFound:
		return "not found"
	case http.StatusMethodNotAllowed:
		return "method not allowed"
	case http.StatusServiceUnavailable:
		return "service unavailable"
	case http.StatusInternalServerError:
		return "internal server error"
	default:
		return "error"
	}
}
