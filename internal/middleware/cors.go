package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultCORSMaxAge = 24 * time.Hour

// CORSConfig holds the configuration for the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists origins allowed to make cross-origin requests.
	// ["*"] allows any origin.
	AllowOrigins []string

	AllowMethods []string
	AllowHeaders []string

	// AllowCredentials lets browsers send cookies and auth headers.
	AllowCredentials bool

	// MaxAge is how long a preflight result may be cached, as a Go duration
	// ("12h") or a number of seconds ("3600"). Empty means 24h.
	MaxAge string
}

// DefaultCORSConfig returns a permissive CORS configuration for development.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", requestIDHeader},
	}
}

// CORS returns a gin middleware using DefaultCORSConfig.
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig returns a gin middleware that handles Cross-Origin Resource
// Sharing using cfg. Requests without an Origin header pass through untouched.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	wildcard := slices.Contains(cfg.AllowOrigins, "*")
	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	maxAge := maxAgeSeconds(cfg.MaxAge)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		c.Writer.Header().Add("Vary", "Origin")

		switch {
		case wildcard && !cfg.AllowCredentials:
			c.Header("Access-Control-Allow-Origin", "*")
		case wildcard || slices.Contains(cfg.AllowOrigins, origin):
			// Credentialed responses must echo a concrete origin.
			c.Header("Access-Control-Allow-Origin", origin)
		default:
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Header("Access-Control-Expose-Headers", requestIDHeader)
		c.Header("Access-Control-Max-Age", maxAge)
		if cfg.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// maxAgeSeconds renders v as whole seconds for the Access-Control-Max-Age header.
func maxAgeSeconds(v string) string {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return v
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		d = defaultCORSMaxAge
	}
	return strconv.Itoa(int(d / time.Second))
}
