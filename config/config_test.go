package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 1000, cfg.HistoryLimit)
	assert.Equal(t, 1024, cfg.ReadBufferSize)
	assert.Equal(t, 1024, cfg.WriteBufferSize)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RELAY_ADDR", ":9000")
	t.Setenv("RELAY_HISTORY_LIMIT", "250")
	t.Setenv("RELAY_READ_BUFFER", "4096")
	t.Setenv("RELAY_WRITE_BUFFER", "8192")
	t.Setenv("RELAY_SHUTDOWN_TIMEOUT", "30")

	cfg := FromEnv()
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 250, cfg.HistoryLimit)
	assert.Equal(t, 4096, cfg.ReadBufferSize)
	assert.Equal(t, 8192, cfg.WriteBufferSize)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnvInvalidValues(t *testing.T) {
	t.Setenv("RELAY_HISTORY_LIMIT", "zero")
	t.Setenv("RELAY_SHUTDOWN_TIMEOUT", "-5")

	cfg := FromEnv()
	assert.Equal(t, 1000, cfg.HistoryLimit)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
