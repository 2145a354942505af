package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const healthPingTimeout = time.Second

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules []Module
	// Driver names the configured user store for the health report.
	Driver string
	// DB is pinged by the health check. Nil when the store is in memory.
	DB *gorm.DB
}

// RegisterRoutes registers all application routes on the given gin.Engine.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}

	r.GET("/health", healthHandler(deps.Driver, deps.DB))

	api := r.Group("/api/v1")
	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(api)
	}

	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) { renderError(c, http.StatusNotFound, "") })
	r.NoMethod(func(c *gin.Context) { renderError(c, http.StatusMethodNotAllowed, "") })

	return nil
}

// healthHandler reports whether the user store is reachable. An in-memory
// store is always healthy; a SQL store is pinged with a short timeout.
func healthHandler(driver string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storage := "ok"
		if db != nil {
			if err := pingDB(c.Request.Context(), db); err != nil {
				storage = "error"
			}
		}

		status, code := "ok", http.StatusOK
		if storage != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status": status,
			"driver": driver,
			"components": gin.H{
				"storage": storage,
			},
		})
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
