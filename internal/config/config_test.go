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

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8088
  env: test
jwt:
  secret: file-secret
  ttl: 15
relay:
  driver: nats
workers:
  campaign_close_interval: 5m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
	assert.Equal(t, "nats", cfg.Relay.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Workers.CampaignCloseInterval)
	// untouched keys keep their defaults
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, 100, cfg.Notifications.QueueSize)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: file-secret\n")

	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("RELAY_DRIVER", "redis")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.True(t, cfg.Email.Enabled)
	assert.Equal(t, "redis", cfg.Relay.Driver)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
}

func TestValidate(t *testing.T) {
	t.Run("production needs a secret", func(t *testing.T) {
		cfg := Default()
		cfg.Server.Env = "production"
		assert.Error(t, cfg.Validate())

		cfg.JWT.Secret = "s"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown relay driver", func(t *testing.T) {
		cfg := Default()
		cfg.Relay.Driver = "kafka"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown storage type", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.Type = "ftp"
		assert.Error(t, cfg.Validate())
	})
}
