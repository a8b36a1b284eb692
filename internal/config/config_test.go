package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "unistay-booking-queue", cfg.Temporal.TaskQueue)
	assert.Equal(t, "unistay-booking-events", cfg.Kafka.Topic)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 30*time.Second, cfg.Redis.ListingsTTL)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Temporal.HostPort)
}

func TestLoadFile_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: "9090"
auth:
  jwt_secret: from-file
redis:
  addr: redis:6379
`), 0o600))
	t.Setenv("REDIS_ADDR", "cache:6380")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
}

func TestValidateServer_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.ValidateServer(), "JWT_SECRET")

	cfg.Auth.JWTSecret = "secret"
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoadFile_WorkerWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "unistay-booking-queue", cfg.Temporal.TaskQueue)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{Log: Log{Level: "DEBUG"}}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{Log: Log{Level: "warn"}}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{Log: Log{Level: "verbose"}}).SlogLevel())
}
