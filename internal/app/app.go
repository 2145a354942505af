package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/sabasm/user/internal/config"
	"github.com/sabasm/user/internal/domain"
	"github.com/sabasm/user/internal/middleware"
	"github.com/sabasm/user/internal/module/user"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if timeout > 0 {
		srv.ReadTimeout = timeout
		srv.WriteTimeout = timeout
	}
	return srv
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the user store selected by database.driver, the
// repository → service → handler chain, middleware and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}

	success := false

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}

	repo, db, err := openStore(&cfg.Database, log.Logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if success {
			return
		}
		if err := config.CloseDatabase(db); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	if db != nil && cfg.Database.AutoMigrate {
		if err := migrate(db); err != nil {
			return nil, err
		}
		log.Info("auto migration completed")
	}

	// Manual dependency injection: repository → service → handler → module.
	svc := user.NewUserService(user.WithTimestamps(repo))
	userModule := user.NewModule(user.NewUserHandler(svc))

	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{TrustUpstream: false}),
		middleware.LoggerWithConfig(log.Logger, middleware.LoggerConfig{SkipPaths: []string{"/health"}}),
		middleware.CORSWithConfig(resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS)),
	)

	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: []Module{userModule},
		Driver:  cfg.Database.Driver,
		DB:      db,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	log.Info("user store ready", slog.String("driver", cfg.Database.Driver))

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

// openStore builds the repository for the configured driver. The returned
// *gorm.DB is nil for the memory driver.
func openStore(cfg *config.DatabaseConfig, log *slog.Logger) (domain.UserRepository, *gorm.DB, error) {
	if !cfg.UsesGORM() {
		if cfg.Driver != config.DriverMemory {
			return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
		}
		return user.NewMemoryRepository(), nil, nil
	}

	db, err := config.SetupDatabase(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}
	return user.NewGormRepository(db), db, nil
}

// Migrate creates or updates the users table for a SQL-backed configuration.
// It is a no-op for the memory driver.
func Migrate(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer log.Close()

	if !cfg.Database.UsesGORM() {
		log.Info("nothing to migrate", slog.String("driver", cfg.Database.Driver))
		return nil
	}

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return fmt.Errorf("setup database: %w", err)
	}
	defer config.CloseDatabase(db)

	if err := migrate(db); err != nil {
		return err
	}
	log.Info("migration completed", slog.String("driver", cfg.Database.Driver))
	return nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// resolveCORSConfig merges configured CORS settings over the defaults. In
// release mode an empty allowlist denies all cross-origin requests.
func resolveCORSConfig(mode string, cfg config.CORSConfig) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	switch {
	case len(cfg.AllowOrigins) > 0:
		corsConfig.AllowOrigins = cfg.AllowOrigins
	case mode == gin.ReleaseMode:
		corsConfig.AllowOrigins = []string{}
	}
	if len(cfg.AllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowMethods
	}
	if len(cfg.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowHeaders
	}
	corsConfig.AllowCredentials = cfg.AllowCredentials
	corsConfig.MaxAge = cfg.MaxAge

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It then drains in-flight requests within server.shutdown_timeout and closes
// the database connection if one is open.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	log := slog.Default()
	if a.logger != nil {
		log = a.logger.Logger
	}

	timeout, _ := time.ParseDuration(a.cfg.Server.Timeout)
	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine, timeout)

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownDuration())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if a.db != nil {
		if err := config.CloseDatabase(a.db); err != nil {
			log.Error("database close error", slog.Any("error", err))
		} else {
			log.Info("database connection closed")
		}
	}

	log.Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}
