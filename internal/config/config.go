package config

import (
	"fmt"
	"strings"

	pkgconfig "github.com/shopverse/storefront/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8010"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Session state TTL in hours (default: 7 days). Applies to both
	// carts and wishlists.
	SessionTTL int `env:"SESSION_TTL_HOURS" envDefault:"168"`

	// Catalog source: a local file path or an http(s) URL serving the
	// product catalog JSON document.
	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"products.json"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	OTLPEndpoint string  `env:"OTLP_ENDPOINT" envDefault:""`
	TraceRatio   float64 `env:"TRACE_SAMPLE_RATIO" envDefault:"1.0"`

	// CIDRs allowed to reach the pprof debug endpoints.
	PprofCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SessionTTL < 1 {
		return fmt.Errorf("invalid session TTL: %d hours", c.SessionTTL)
	}
	if strings.TrimSpace(c.CatalogSource) == "" {
		return fmt.Errorf("catalog source must not be empty")
	}
	if c.TraceRatio < 0 || c.TraceRatio > 1 {
		return fmt.Errorf("invalid trace sample ratio: %f", c.TraceRatio)
	}
	return nil
}
