package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server    ServerConfig
	App       AppConfig
	Upstream  UpstreamConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Session   SessionConfig
	Ledger    LedgerConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"cosmetics-store-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text"` // text or json
}

// UpstreamConfig holds settings for the third-party catalog API.
type UpstreamConfig struct {
	BaseURL      string        `envconfig:"UPSTREAM_BASE_URL" default:"https://fortnite-api.com/v2/"`
	APIKey       string        `envconfig:"UPSTREAM_API_KEY" default:""`
	Language     string        `envconfig:"UPSTREAM_LANGUAGE" default:"en"`
	Timeout      time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
	CatalogTTL   time.Duration `envconfig:"UPSTREAM_CATALOG_TTL" default:"30m"`
	NewItemsTTL  time.Duration `envconfig:"UPSTREAM_NEW_TTL" default:"10m"`
	ShopTTL      time.Duration `envconfig:"UPSTREAM_SHOP_TTL" default:"5m"`
	WarmInterval time.Duration `envconfig:"UPSTREAM_WARM_INTERVAL" default:"1m"`
}

// DatabaseConfig holds ledger database settings.
type DatabaseConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"sqlite"` // sqlite, postgres, or mysql
	Path     string `envconfig:"DB_PATH" default:"./data/store.db"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"cosmetics"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASS" default:""`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// CacheConfig holds session cache settings.
type CacheConfig struct {
	Type string `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// SessionConfig holds login session settings.
type SessionConfig struct {
	TTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

// LedgerConfig holds ledger settings.
type LedgerConfig struct {
	InitialBalance int64 `envconfig:"LEDGER_INITIAL_BALANCE" default:"10000"`
}

// RateLimitConfig bounds ledger mutations per client IP.
type RateLimitConfig struct {
	RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	Burst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// PostgresDSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// MySQLDSN returns the MySQL data source name.
func (d *DatabaseConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// DSN returns the connection string for the configured database type.
// SQLite uses the file path.
func (d *DatabaseConfig) DSN() string {
	switch d.Type {
	case "postgres", "postgresql":
		return d.PostgresDSN()
	case "mysql":
		return d.MySQLDSN()
	default:
		return d.Path
	}
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Ledger.InitialBalance < 0 {
		return nil, fmt.Errorf("failed to load config: LEDGER_INITIAL_BALANCE must be non-negative")
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
