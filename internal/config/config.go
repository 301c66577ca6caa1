package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	AppName        string `envconfig:"APP_NAME" default:"citenote"`
	AppVersion     string `envconfig:"APP_VERSION" default:"1.0.0"`
	Port           string `envconfig:"PORT" default:"3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`

	// Database configuration
	DBType               string        `envconfig:"DB_TYPE" default:"postgres"` // mysql, postgres, sqlite, sqlserver, etc.
	DBHost               string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort               string        `envconfig:"DB_PORT" default:"5432"`
	DBDatabase           string        `envconfig:"DB_DATABASE" required:"true"`
	DBAppUser            string        `envconfig:"DB_APP_USER"`
	DBAppPassword        string        `envconfig:"DB_APP_PASSWORD"`
	DBAppConnectionLimit int           `envconfig:"DB_APP_CONNECTION_LIMIT" default:"5"`
	DBUser               string        `envconfig:"DB_USER"`
	DBPassword           string        `envconfig:"DB_PASSWORD"`
	DBConnectionLimit    int           `envconfig:"DB_CONNECTION_LIMIT" default:"5"`
	StoreTimeout         time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`

	// Session configuration
	SessionStore  string        `envconfig:"SESSION_STORE" default:"memory"` // memory, redis
	SessionCookie string        `envconfig:"SESSION_COOKIE" default:"citenote_session"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`

	// Account configuration
	PasswordPepper string   `envconfig:"PASSWORD_PEPPER" required:"true"`
	BcryptCost     int      `envconfig:"BCRYPT_COST" default:"12"`
	AllowedRoles   []string `envconfig:"ALLOWED_ROLES" default:"guest,editor,reviewer"`

	// ErrorStatusMode selects how classified errors map to HTTP statuses: legacy or rest.
	ErrorStatusMode string `envconfig:"ERROR_STATUS_MODE" default:"legacy"`
}

// Load loads configuration from an optional .env file and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings envconfig tags cannot express
func (c *Config) Validate() error {
	switch c.DBType {
	case "sqlite", "sqlite-nocgo":
	default:
		if c.DBAppUser == "" {
			return fmt.Errorf("DB_APP_USER is required for %s", c.DBType)
		}
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required for %s", c.DBType)
		}
	}

	if c.PasswordPepper == "" {
		return fmt.Errorf("PASSWORD_PEPPER must not be empty")
	}

	switch c.SessionStore {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported session store: %s", c.SessionStore)
	}

	switch c.ErrorStatusMode {
	case "legacy", "rest":
	default:
		return fmt.Errorf("unsupported error status mode: %s", c.ErrorStatusMode)
	}

	for i, role := range c.AllowedRoles {
		c.AllowedRoles[i] = strings.TrimSpace(role)
	}

	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	return nil
}
