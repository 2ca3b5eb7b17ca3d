package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: "host=localhost"
auth:
  jwt_secret: s3cret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10.0, cfg.Server.RateLimitPerSec)
	assert.Equal(t, 20, cfg.Server.RateLimitBurst)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.Equal(t, 8*time.Hour, cfg.Auth.TokenTTL)
	assert.Zero(t, cfg.Auth.IdentityCacheTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDatabaseDSN, "file:env.db")
	t.Setenv(EnvJWTSecret, "from-env")
	path := writeConfig(t, `
database:
  driver: sqlite
  dsn: "file:yaml.db"
auth:
  identity_cache_seconds: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file:env.db", cfg.Database.DSN)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Second, cfg.Auth.IdentityCacheTTL)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"missing secret", "database:\n  dsn: x\n"},
		{"missing dsn", "auth:\n  jwt_secret: s\n"},
		{"unknown driver", "database:\n  driver: oracle\n  dsn: x\nauth:\n  jwt_secret: s\n"},
		{"malformed yaml", "database: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
