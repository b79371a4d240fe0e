package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	strs "waitlist/pkg/platform/strings"
)

// Config is the process configuration, read from WAITLIST_* variables.
type Config struct {
	Server   Server
	Database DatabaseConfig
	Redis    RedisConfig
	Geo      GeoConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"ADDR"             envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	AdminToken      string        `env:"ADMIN_TOKEN"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig configures the Postgres subscription store. An empty URL
// selects the in-memory store.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"    envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"    envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE"      envDefault:"false"`
}

// RedisConfig configures the geolocation cache. An empty URL disables it.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE"      envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT"   envDefault:"2s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT"   envDefault:"500ms"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT"  envDefault:"500ms"`
}

// GeoConfig configures the best-effort IP geolocation lookup.
type GeoConfig struct {
	Enabled  bool          `env:"GEO_ENABLED"   envDefault:"true"`
	BaseURL  string        `env:"GEO_BASE_URL"  envDefault:"http://ip-api.com/json/"`
	Timeout  time.Duration `env:"GEO_TIMEOUT"   envDefault:"3s"`
	CacheTTL time.Duration `env:"GEO_CACHE_TTL" envDefault:"24h"`
}

const envPrefix = "WAITLIST_"

// Load reads an optional .env file and then parses the environment.
func Load(dotenvPaths ...string) (Config, error) {
	if len(dotenvPaths) == 0 {
		dotenvPaths = []string{".env"}
	}
	if err := godotenv.Load(dotenvPaths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Geo.Timeout <= 0 {
		return Config{}, fmt.Errorf("%sGEO_TIMEOUT must be positive", envPrefix)
	}
	cfg.Server.AllowedOrigins = strs.DedupeAndTrim(cfg.Server.AllowedOrigins)
	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (s Server) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(s.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
