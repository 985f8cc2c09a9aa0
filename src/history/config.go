package history

import (
	"os"
	"strconv"
)

// RedisConfig holds connection settings for the Redis-backed store.
type RedisConfig struct {
	Addr     string // Redis address, default "localhost:6379"
	Password string // Redis password, default ""
	DB       int    // Redis database number, default 0
	Key      string // list key holding the backlog, default "relay:history"
	MaxLen   int64  // retention cap on the list, default 2000
}

// DefaultRedisConfig returns a RedisConfig with sensible defaults.
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:   "localhost:6379",
		Key:    "relay:history",
		MaxLen: 2000,
	}
}

// RedisConfigFromEnv loads Redis configuration from environment variables.
// Falls back to defaults for any missing values.
func RedisConfigFromEnv() *RedisConfig {
	cfg := DefaultRedisConfig()

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
		cfg.Password = pw
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.DB = db
		}
	}
	if key := os.Getenv("REDIS_HISTORY_KEY"); key != "" {
		cfg.Key = key
	}
	if maxStr := os.Getenv("REDIS_HISTORY_MAX"); maxStr != "" {
		if max, err := strconv.ParseInt(maxStr, 10, 64); err == nil && max > 0 {
			cfg.MaxLen = max
		}
	}
	return cfg
}
