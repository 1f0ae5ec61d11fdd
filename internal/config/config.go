package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultTxTimeout     = "5s"
	defaultSweepInterval = "10m"
	defaultJWTTTL        = "24h"
)

type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTTTL        time.Duration
	TxTimeout     time.Duration // upper bound for one admission transaction
	SweepInterval time.Duration // stale pending-booking sweeper period
}

func Load() (*Config, error) {
	// .env is optional; real deployments set env directly
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      strings.ToLower(envOr("APP_ENV", "dev")),
		Port:        envOr("PORT", defaultPort),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is empty")
	}

	var err error
	if cfg.JWTTTL, err = durationOr("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.TxTimeout, err = durationOr("TX_TIMEOUT", defaultTxTimeout); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = durationOr("SWEEP_INTERVAL", defaultSweepInterval); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationOr(key, def string) (time.Duration, error) {
	raw := envOr(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive", key)
	}
	return d, nil
}
