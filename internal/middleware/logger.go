package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggerConfig configures the request logging middleware.
type LoggerConfig struct {
	// SkipPaths are request paths that are never logged, such as /health.
	SkipPaths []string
}

// Logger returns a gin middleware that logs every request with method, path,
// status, latency and client IP.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return LoggerWithConfig(logger, LoggerConfig{})
}

// LoggerWithConfig is Logger with options. The level follows the status code:
// 5xx logs at Error, 4xx at Warn and everything else at Info. The request
// context is passed through so a ContextMiddleware handler adds request_id.
func LoggerWithConfig(logger *slog.Logger, cfg LoggerConfig) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		status := c.Writer.Status()

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("bytes", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		logger.LogAttrs(c.Request.Context(), level, "request", attrs...)
	}
}
