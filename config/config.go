package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the config file.
const (
	EnvDatabaseDSN = "WORKSHOP_DB_DSN"
	EnvJWTSecret   = "WORKSHOP_JWT_SECRET"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogLevel               string `yaml:"log_level"`
}

// AuthConfig holds the bearer token settings.
type AuthConfig struct {
	JWTSecret            string        `yaml:"jwt_secret"`
	TokenTTLMinutes      int           `yaml:"token_ttl_minutes"`
	TokenTTL             time.Duration `yaml:"-"`
	IdentityCacheSeconds int           `yaml:"identity_cache_seconds"`
	IdentityCacheTTL     time.Duration `yaml:"-"`
}

// Load reads the configuration from the given path, then applies
// environment overrides (optionally from a .env file) and defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not read .env file: %v", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyEnv() {
	if dsn := os.Getenv(EnvDatabaseDSN); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if secret := os.Getenv(EnvJWTSecret); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 20
	}

	if cfg.Database.Driver == "" {
		log.Printf("database.driver is not set; defaulting to postgres")
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetimeMinutes <= 0 {
		cfg.Database.ConnMaxLifetimeMinutes = 30
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}

	if cfg.Auth.TokenTTLMinutes <= 0 {
		log.Printf("auth.token_ttl_minutes is not set or invalid; defaulting to 480")
		cfg.Auth.TokenTTLMinutes = 480
	}
	cfg.Auth.TokenTTL = time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute
	if cfg.Auth.IdentityCacheSeconds < 0 {
		cfg.Auth.IdentityCacheSeconds = 0
	}
	cfg.Auth.IdentityCacheTTL = time.Duration(cfg.Auth.IdentityCacheSeconds) * time.Second
}

// Validate reports settings the server cannot start without.
func (cfg *Config) Validate() error {
	switch cfg.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("database.driver %q is not one of postgres, mysql, sqlite", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is empty; set it in the config file or %s", EnvDatabaseDSN)
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is empty; set it in the config file or %s", EnvJWTSecret)
	}
	return nil
}
