package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/relaychat/relay/src/types"
)

// RedisStore persists messages as JSON entries in a Redis list. Appends go
// to the tail and the list is trimmed to MaxLen, so the head is always the
// oldest retained message.
type RedisStore struct {
	client *redis.Client
	key    string
	maxLen int64
	logger zerolog.Logger
}

// NewRedisStore creates a store backed by the given Redis configuration.
// Call Ping before relying on it; construction does not dial.
func NewRedisStore(cfg *RedisConfig, logger zerolog.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisStore{
		client: client,
		key:    cfg.Key,
		maxLen: cfg.MaxLen,
		logger: logger.With().Str("component", "redis-history").Logger(),
	}
}

// Ping checks that Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Append pushes msg onto the backlog and trims to the retention cap.
func (s *RedisStore) Append(ctx context.Context, msg types.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", types.ErrStoreUnavailable, err)
	}
	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("%w: %v", types.ErrStoreUnavailable, err)
	}
	if err := s.client.LTrim(ctx, s.key, -s.maxLen, -1).Err(); err != nil {
		return fmt.Errorf("%w: trim: %v", types.ErrStoreUnavailable, err)
	}
	return nil
}

// RecentWindow reads the last limit entries, oldest first. Entries that
// fail to decode are skipped with a log rather than failing the window.
func (s *RedisStore) RecentWindow(ctx context.Context, limit int) ([]types.Message, error) {
	if limit <= 0 {
		return nil, nil
	}
	raw, err := s.client.LRange(ctx, s.key, int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStoreUnavailable, err)
	}

	window := make([]types.Message, 0, len(raw))
	for _, entry := range raw {
		var msg types.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			s.logger.Warn().Err(err).Msg("skipping undecodable history entry")
			continue
		}
		window = append(window, msg)
	}
	return window, nil
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
