package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the server configuration, populated from the
// environment
type Config struct {
	Port   string `env:"PORT, default=:8080"`
	DBPath string `env:"DB_PATH, default=./data/profiles.db"`

	// AuthEnabled switches JWT bearer auth on for the API routes;
	// JWTSecret must be set when it is
	AuthEnabled bool   `env:"AUTH_ENABLED, default=false"`
	JWTSecret   string `env:"JWT_SECRET"`

	LogLevel string `env:"LOG_LEVEL, default=info"`

	// FrameRateLimit caps frame ingestion per client per second
	FrameRateLimit int `env:"FRAME_RATE_LIMIT, default=120"`
}

// Load reads the configuration from the environment
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("AUTH_ENABLED requires JWT_SECRET to be set")
	}

	return &cfg, nil
}
