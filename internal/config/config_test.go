package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, "production", cfg.App.Env)
	assert.False(t, cfg.Development())
	assert.Equal(t, "media", cfg.Mongo.Collection)
	assert.Equal(t, DriverMongo, cfg.Mongo.Driver)
	assert.Empty(t, cfg.Mongo.URI)
	assert.Empty(t, cfg.Mongo.Database)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.OpTimeout)
	assert.Equal(t, 100, cfg.Top.MaxLimit)
	assert.Equal(t, 60, cfg.RateLimit.DownloadsPerMinute)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "media.downloaded", cfg.Kafka.Topic)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "mongodb://db:27017")
	t.Setenv("DATABASE_NAME", "uriel")
	t.Setenv("APP_ENV", "development")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "uriel", cfg.Mongo.Database)
	assert.True(t, cfg.Development())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, DriverMemory, cfg.Mongo.Driver)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  env: development
  port: 8100
  shutdown_seconds: 5
mongodb:
  uri: mongodb://localhost:27017
  database: uriel
  collection: catalog
  op_timeout_seconds: 2
redis:
  addr: localhost:6379
top:
  max_limit: 25
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8100, cfg.App.Port)
	assert.Equal(t, "catalog", cfg.Mongo.Collection)
	assert.Equal(t, 2*time.Second, cfg.OpTimeout)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 25, cfg.Top.MaxLimit)

	t.Setenv("PORT", "8200")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8200, cfg.App.Port)
}

func TestLoad_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
