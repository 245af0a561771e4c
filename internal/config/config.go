package config

import (
	"fmt"
	"time"

	"fair_rps/internal/logger"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`

	AppPort       string `env:"APP_PORT" envDefault:"8080"`
	JWTSecret     string `env:"JWT_SECRET"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN"`

	// Rounds
	DefaultMoves []string      `env:"DEFAULT_MOVES" envSeparator:"," envDefault:"Rock,Paper,Scissors"`
	RoundTTL     time.Duration `env:"ROUND_TTL" envDefault:"10m"`
	MaxMoves     int           `env:"MAX_MOVES" envDefault:"101"`

	// Rate limiting, Redis is optional
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	APIRateLimit    int           `env:"API_RATE_LIMIT" envDefault:"30"`
	APIRateWindow   time.Duration `env:"API_RATE_WINDOW" envDefault:"1m"`
	RoundRateLimit  int           `env:"ROUND_RATE_LIMIT" envDefault:"20"`
	RoundRateWindow time.Duration `env:"ROUND_RATE_WINDOW" envDefault:"1m"`

	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"30s"`
}

// Parse reads .env (if present) and the process environment.
func Parse() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.APIRateLimit <= 0 {
		return nil, fmt.Errorf("API_RATE_LIMIT must be positive, got %d", cfg.APIRateLimit)
	}
	if cfg.RoundRateLimit <= 0 {
		return nil, fmt.Errorf("ROUND_RATE_LIMIT must be positive, got %d", cfg.RoundRateLimit)
	}
	if cfg.RoundTTL <= 0 {
		return nil, fmt.Errorf("ROUND_TTL must be positive, got %s", cfg.RoundTTL)
	}
	if cfg.MaxMoves < 3 {
		return nil, fmt.Errorf("MAX_MOVES must be at least 3, got %d", cfg.MaxMoves)
	}
	if cfg.SweepInterval <= 0 {
		return nil, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", cfg.SweepInterval)
	}
	return &cfg, nil
}

// Load is Parse for binaries: a bad environment is fatal.
func Load() *Config {
	cfg, err := Parse()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// RequireServer checks the settings only the HTTP server needs.
func (c *Config) RequireServer() {
	if c.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}
}
