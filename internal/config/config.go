// Package config holds the process configuration. Everything is read from the
// environment exactly once at startup; handlers receive the parsed struct and
// never touch os.Getenv themselves.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// GitHub holds the OAuth app registration values. They are not required at
// startup: a deployment without them still serves the non-auth endpoints, and
// the sign-in handlers reject requests until all three are present.
type GitHub struct {
	ClientID     string `env:"GH_CLIENT_ID"`
	ClientSecret string `env:"GH_CLIENT_SECRET"`
	RedirectURI  string `env:"GH_REDIRECT_URI"`

	// Overridable so tests can point the client at httptest servers.
	AuthBaseURL string `env:"GH_AUTH_BASE_URL" envDefault:"https://github.com"`
	APIBaseURL  string `env:"GH_API_BASE_URL" envDefault:"https://api.github.com"`
}

// Storage configures the S3-compatible object store used by the upload
// archiver.
type Storage struct {
	Endpoint  string `env:"STORAGE_ENDPOINT"`
	AccessKey string `env:"STORAGE_ACCESS_KEY"`
	SecretKey string `env:"STORAGE_SECRET_KEY"`
	Bucket    string `env:"STORAGE_BUCKET"`
	UseTLS    bool   `env:"STORAGE_USE_TLS" envDefault:"true"`
}

// Config is the top-level process configuration.
type Config struct {
	Addr            string        `env:"BFF_ADDR" envDefault:":5000"`
	RedisURL        string        `env:"REDIS_URL" envDefault:"redis://127.0.0.1:6379"`
	CookieSecret    string        `env:"COOKIE_SECRET"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	OutboundTimeout time.Duration `env:"OUTBOUND_TIMEOUT" envDefault:"10s"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`

	// DevMode relaxes the Secure flag on the session cookie for plain-HTTP
	// local development.
	DevMode bool `env:"DEV_MODE" envDefault:"false"`

	GitHub  GitHub
	Storage Storage
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if len(cfg.CookieSecret) < 32 {
		return nil, fmt.Errorf("COOKIE_SECRET must be at least 32 bytes")
	}
	return &cfg, nil
}
