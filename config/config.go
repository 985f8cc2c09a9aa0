// Package config holds the relay server configuration.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds relay server configuration.
type Config struct {
	Addr            string        // listen address
	HistoryLimit    int           // max messages replayed on join
	ReadBufferSize  int           // websocket read buffer, bytes
	WriteBufferSize int           // websocket write buffer, bytes
	ShutdownTimeout time.Duration // grace period on shutdown
}

// Default returns the default relay configuration.
func Default() *Config {
	return &Config{
		Addr:            ":8080",
		HistoryLimit:    1000,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		ShutdownTimeout: 10 * time.Second,
	}
}

// FromEnv loads configuration from environment variables, falling back to
// defaults for any missing or unparsable values.
func FromEnv() *Config {
	cfg := Default()

	if addr := os.Getenv("RELAY_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if limit := os.Getenv("RELAY_HISTORY_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}
	if size := os.Getenv("RELAY_READ_BUFFER"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			cfg.ReadBufferSize = n
		}
	}
	if size := os.Getenv("RELAY_WRITE_BUFFER"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			cfg.WriteBufferSize = n
		}
	}
	if timeout := os.Getenv("RELAY_SHUTDOWN_TIMEOUT"); timeout != "" {
		if seconds, err := strconv.Atoi(timeout); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}
	return cfg
}
