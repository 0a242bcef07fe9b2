package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnrichSync  = "sync"
	EnrichAsync = "async"

	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	// Database
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" env-default:"ideahub"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"disable"`

	// JWT
	JWTSecret string        `env:"JWT_SECRET"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" env-default:"168h"`

	// AI analysis service
	AIProvider   string        `env:"AI_PROVIDER" env-default:"openai"`
	AIAPIKey     string        `env:"AI_API_KEY"`
	AIBaseURL    string        `env:"AI_BASE_URL"`
	AIModel      string        `env:"AI_MODEL" env-default:"gpt-4o-mini"`
	AITimeout    time.Duration `env:"AI_TIMEOUT" env-default:"30s"`
	AIEnrichMode string        `env:"AI_ENRICH_MODE" env-default:"sync"`

	// Rate limits
	RateLimitMax      int           `env:"RATE_LIMIT_MAX" env-default:"100"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"15m"`
	AIRateLimitMax    int           `env:"AI_RATE_LIMIT_MAX" env-default:"10"`
	AIRateLimitWindow time.Duration `env:"AI_RATE_LIMIT_WINDOW" env-default:"1m"`
	RedisURL          string        `env:"REDIS_URL"`

	// Server
	Port        string `env:"PORT" env-default:"8080"`
	CORSOrigins string `env:"CORS_ORIGINS" env-default:"*"`
	AppEnv      string `env:"APP_ENV" env-default:"development"`
	SentryDSN   string `env:"SENTRY_DSN"`

	LogRetentionDays int `env:"LOG_RETENTION_DAYS" env-default:"30"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	if c.AIEnrichMode != EnrichSync && c.AIEnrichMode != EnrichAsync {
		return fmt.Errorf("AI_ENRICH_MODE must be %q or %q", EnrichSync, EnrichAsync)
	}
	if c.AIProvider != ProviderOpenAI && c.AIProvider != ProviderAnthropic {
		return fmt.Errorf("AI_PROVIDER must be %q or %q", ProviderOpenAI, ProviderAnthropic)
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}
