// Package config reads the service configuration from the environment and flags.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the runtime parameters of the POS administration service.
type Config struct {
	RunAddress    string        `env:"RUN_ADDRESS"`
	DatabaseURI   string        `env:"DATABASE_URI"`
	AdminUsername string        `env:"ADMIN_USERNAME"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	SessionTTL    time.Duration `env:"SESSION_TTL"`
}

// Parse reads configuration from a .env file (if present), environment
// variables and command-line flags. Environment values take precedence over
// flags, flags over defaults.
func Parse() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envAdminUsername := cfg.AdminUsername
	envAdminPassword := cfg.AdminPassword
	envSessionTTL := cfg.SessionTTL

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.AdminUsername, "admin-user", "admin", "bootstrap admin username")
	flag.StringVar(&cfg.AdminPassword, "admin-password", "", "bootstrap admin password")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", 24*time.Hour, "session lifetime")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envAdminUsername != "" {
		cfg.AdminUsername = envAdminUsername
	}
	if envAdminPassword != "" {
		cfg.AdminPassword = envAdminPassword
	}
	if envSessionTTL != 0 {
		cfg.SessionTTL = envSessionTTL
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	return cfg, nil
}
