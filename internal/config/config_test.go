package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
http:
  port: 8080
database:
  host: db.internal
  port: 5433
  user: kitchenpos
  password: secret
  database: kitchenpos
rabbitmq:
  host: mq.internal
  port: 5673
  user: guest
  password: guest
redis:
  host: cache.internal
  port: 6380
  ttl: 10m
profanity:
  base_url: https://oracle.internal/service
  timeout: 2s
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.HTTP.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "mq.internal", cfg.RabbitMQ.Host)
		assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
		assert.Equal(t, "https://oracle.internal/service", cfg.Profanity.BaseURL)
		assert.Equal(t, 2*time.Second, cfg.Profanity.Timeout)
	})

	t.Run("defaults fill the gaps", func(t *testing.T) {
		path := writeConfig(t, `
database:
  host: localhost
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.HTTP.Port)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 5672, cfg.RabbitMQ.Port)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
		assert.Equal(t, "https://www.purgomalum.com/service", cfg.Profanity.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Profanity.Timeout)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := writeConfig(t, "http: [not a mapping")
		_, err := Load(path)
		require.Error(t, err)
	})
}
