package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Supported storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string     `koanf:"host"`
	Port            int        `koanf:"port"`
	Mode            string     `koanf:"mode"`
	Timeout         string     `koanf:"timeout"`
	ShutdownTimeout string     `koanf:"shutdown_timeout"`
	CORS            CORSConfig `koanf:"cors"`
}

// CORSConfig holds CORS middleware settings.
type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           string   `koanf:"max_age"`
}

// DatabaseConfig selects the user store. The memory driver keeps users in
// process; sqlite and postgres go through GORM.
type DatabaseConfig struct {
	Driver      string         `koanf:"driver"`
	AutoMigrate bool           `koanf:"auto_migrate"`
	SQLite      SQLiteConfig   `koanf:"sqlite"`
	Postgres    PostgresConfig `koanf:"postgres"`
	Pool        PoolConfig     `koanf:"pool"`
}

// UsesGORM reports whether the configured driver is backed by a SQL database.
func (d DatabaseConfig) UsesGORM() bool {
	return d.Driver == DriverSQLite || d.Driver == DriverPostgres
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	ConnMaxLifetime string `koanf:"conn_max_lifetime"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// Load reads configuration from a YAML file and overlays environment variables.
// Environment variables use the prefix "APP__" and double-underscore as the
// hierarchy separator. Single underscores are preserved as part of the key name.
// For example, APP__SERVER__PORT=9090 overrides server.port and
// APP__DATABASE__AUTO_MIGRATE=true overrides database.auto_migrate.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	// APP__DATABASE__POOL__MAX_IDLE_CONNS -> database.pool.max_idle_conns
	if err := k.Load(env.Provider("APP__", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func envKey(s string) string {
	key := strings.TrimPrefix(s, "APP__")
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "__", ".")
}

// ShutdownDuration returns the graceful shutdown window, defaulting to 10s.
func (s ServerConfig) ShutdownDuration() time.Duration {
	if d, err := time.ParseDuration(s.ShutdownTimeout); err == nil && d > 0 {
		return d
	}
	return 10 * time.Second
}

// Validate checks cross-field constraints and supported values, normalizing
// whitespace in place.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return err
	}
	if err := c.Database.validate(c.Server.Mode); err != nil {
		return err
	}
	return c.Log.validate()
}

func (s *ServerConfig) validate() error {
	mode := strings.TrimSpace(s.Mode)
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		s.Mode = mode
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", s.Mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}

	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", s.Port)
	}

	host := strings.TrimSpace(s.Host)
	if host == "" {
		return fmt.Errorf("server.host is required")
	}
	s.Host = host

	if err := optionalDuration("server.timeout", &s.Timeout); err != nil {
		return err
	}
	if err := optionalDuration("server.shutdown_timeout", &s.ShutdownTimeout); err != nil {
		return err
	}
	return optionalDuration("server.cors.max_age", &s.CORS.MaxAge)
}

func (d *DatabaseConfig) validate(mode string) error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))
	switch d.Driver {
	case DriverMemory:
		return nil
	case DriverSQLite:
		path := strings.TrimSpace(d.SQLite.Path)
		if path == "" {
			return fmt.Errorf("database.sqlite.path is required when driver is sqlite")
		}
		d.SQLite.Path = path
	case DriverPostgres:
		if err := d.Postgres.validate(mode); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid database.driver %q: must be one of %q, %q, %q", d.Driver, DriverMemory, DriverSQLite, DriverPostgres)
	}

	return optionalDuration("database.pool.conn_max_lifetime", &d.Pool.ConnMaxLifetime)
}

func (p *PostgresConfig) validate(mode string) error {
	host := strings.TrimSpace(p.Host)
	if host == "" {
		return fmt.Errorf("database.postgres.host is required when driver is postgres")
	}
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("invalid database.postgres.port %d: must be between 1 and 65535", p.Port)
	}
	user := strings.TrimSpace(p.User)
	if user == "" {
		return fmt.Errorf("database.postgres.user is required when driver is postgres")
	}
	dbName := strings.TrimSpace(p.DBName)
	if dbName == "" {
		return fmt.Errorf("database.postgres.dbname is required when driver is postgres")
	}

	sslMode := strings.TrimSpace(p.SSLMode)
	switch sslMode {
	case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("invalid database.postgres.sslmode %q: must be one of %q, %q, %q, %q, %q, %q", p.SSLMode, "disable", "allow", "prefer", "require", "verify-ca", "verify-full")
	}
	if mode == gin.ReleaseMode {
		switch sslMode {
		case "require", "verify-ca", "verify-full":
		default:
			return fmt.Errorf("invalid database.postgres.sslmode %q for server.mode %q: must be one of %q, %q, %q", p.SSLMode, gin.ReleaseMode, "require", "verify-ca", "verify-full")
		}
	}

	p.Host = host
	p.User = user
	p.DBName = dbName
	p.SSLMode = sslMode
	return nil
}

func (l *LogConfig) validate() error {
	level := strings.ToLower(strings.TrimSpace(l.Level))
	switch level {
	case "debug", "info", "warn", "error":
		l.Level = level
	default:
		return fmt.Errorf("invalid log.level %q: must be one of %q, %q, %q, %q", l.Level, "debug", "info", "warn", "error")
	}

	format := strings.ToLower(strings.TrimSpace(l.Format))
	switch format {
	case "text", "json":
		l.Format = format
	default:
		return fmt.Errorf("invalid log.format %q: must be one of %q, %q", l.Format, "text", "json")
	}
	return nil
}

// optionalDuration trims *v and, when it is non-empty, requires a positive Go duration.
func optionalDuration(name string, v *string) error {
	*v = strings.TrimSpace(*v)
	if *v == "" {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, *v, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s %q: must be greater than 0", name, *v)
	}
	return nil
}
