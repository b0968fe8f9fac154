package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type RateLimitConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Rate     string `env:"RATE" envDefault:"300-M" validate:"required"`
	Storage  string `env:"STORAGE" envDefault:"memory" validate:"oneof=memory redis"`
	RedisURL string `env:"REDIS_URL" validate:"required_if=Storage redis"`
}

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development" validate:"oneof=development production test"`
	LogLevel string `env:"LOG_LEVEL"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost" validate:"required"`
	DBPort     string `env:"DB_PORT" envDefault:"5432" validate:"required"`
	DBUser     string `env:"DB_USER" envDefault:"werkshift_user" validate:"required"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"werkshift_pass"`
	DBName     string `env:"DB_NAME" envDefault:"werkshift_db" validate:"required"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	ServerPort      string        `env:"SERVER_PORT" envDefault:"8080" validate:"required"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	MetricsPath     string        `env:"METRICS_PATH" envDefault:"/metrics" validate:"startswith=/"`

	JWTSecret      string `env:"JWT_SECRET" validate:"required,min=8"`
	JWTExpiryHours int    `env:"JWT_EXPIRY_HOURS" envDefault:"24" validate:"gt=0"`

	// BulkAttachPolicy selects all-or-nothing ("atomic") or per-item
	// ("best_effort") semantics for shift and werker bulk attachment.
	BulkAttachPolicy string `env:"BULK_ATTACH_POLICY" envDefault:"atomic" validate:"oneof=atomic best_effort"`

	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	// DotenvLoaded is set when a .env file was found and applied.
	DotenvLoaded bool `env:"-"`
}

var validate = validator.New()

// Load applies .env (if present) on top of the process environment and
// parses the result.
func Load() (*Config, error) {
	loaded := true
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
		loaded = false
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.DotenvLoaded = loaded
	return cfg, nil
}

// Parse builds the config from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// DSN is the gorm/postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// MigrationURL is the golang-migrate pgx/v5 database url.
func (c *Config) MigrationURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSSLMode,
	}
	return u.String()
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}
