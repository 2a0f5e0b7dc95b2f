package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config holds the auth service configuration. The two token secrets are
// independent on purpose: a token signed with one must never verify under
// the other.
type Config struct {
	HTTPPort    string `env:"AUTH_HTTP_PORT" envDefault:"8081"`
	DatabaseURL string `env:"DATABASE_URL" validate:"required"`

	AccessTokenSecret  string `env:"ACCESS_TOKEN_SECRET" validate:"required,min=32"`
	RefreshTokenSecret string `env:"REFRESH_TOKEN_SECRET" validate:"required,min=32,nefield=AccessTokenSecret"`

	TokenIssuer   string `env:"TOKEN_ISSUER" envDefault:"teamdeck-auth"`
	TokenAudience string `env:"TOKEN_AUDIENCE" envDefault:"teamdeck-api"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m" validate:"gt=0"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h" validate:"gt=0,gtefield=AccessTokenTTL"`

	RequestTimeout time.Duration `env:"AUTH_REQUEST_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	SweepInterval  time.Duration `env:"CREDENTIAL_SWEEP_INTERVAL" envDefault:"1h" validate:"gt=0"`

	LogDir   string `env:"LOG_DIR"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
