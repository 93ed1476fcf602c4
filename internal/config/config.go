package config

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds every runtime setting, populated from the environment.
type Config struct {
	ServiceName      string `env:"SERVICE_NAME" envDefault:"support-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"lms"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`

	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	DatabaseURL string `env:"DATABASE_URL"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	// JWT bearer auth against the platform identity provider.
	JWKSURL             string        `env:"JWKS_URL"`
	JWTIssuer           string        `env:"JWT_ISSUER"`
	JWTAudience         string        `env:"JWT_AUDIENCE"`
	JWKSRefreshInterval time.Duration `env:"JWKS_REFRESH_INTERVAL" envDefault:"5m"`
	AuthClockSkew       time.Duration `env:"AUTH_CLOCK_SKEW" envDefault:"30s"`

	// Automated assistant channel (OpenAI-compatible endpoint).
	AssistantBaseURL string        `env:"ASSISTANT_BASE_URL" envDefault:"https://api.openai.com/v1"`
	AssistantAPIKey  string        `env:"ASSISTANT_API_KEY"`
	AssistantModel   string        `env:"ASSISTANT_MODEL" envDefault:"gpt-4o-mini"`
	AssistantTimeout time.Duration `env:"ASSISTANT_TIMEOUT" envDefault:"30s"`

	CatalogRefreshEnabled         bool `env:"CATALOG_REFRESH_ENABLED" envDefault:"true"`
	CatalogRefreshIntervalMinutes int  `env:"CATALOG_REFRESH_INTERVAL_MINUTES" envDefault:"30"`

	// Tracing.
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`

	// Admin seed for the data initializer.
	SeedAdminSubject string `env:"SEED_ADMIN_SUBJECT"`
	SeedAdminEmail   string `env:"SEED_ADMIN_EMAIL"`
	SeedAdminName    string `env:"SEED_ADMIN_NAME" envDefault:"Administrator"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

var globalConfig atomic.Pointer[Config]

// Load parses the environment into a fresh Config and stores it globally.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig.Store(cfg)
	return cfg, nil
}

// GetGlobal returns the last loaded config, or nil before the first Load.
func GetGlobal() *Config {
	return globalConfig.Load()
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWKSURL == "" {
		return fmt.Errorf("JWKS_URL is required")
	}
	if c.JWTIssuer == "" {
		return fmt.Errorf("JWT_ISSUER is required")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	if c.CatalogRefreshIntervalMinutes <= 0 {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL_MINUTES must be positive")
	}
	return nil
}
