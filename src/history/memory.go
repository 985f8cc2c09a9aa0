package history

import (
	"context"
	"sync"

	"github.com/relaychat/relay/src/types"
)

// DefaultMemoryCap bounds the in-memory backlog, matching the retention
// used when no durable store is configured.
const DefaultMemoryCap = 2000

// MemoryStore keeps messages in a capped slice. It is the fallback when
// Redis is unreachable; data is lost on restart. Never fails.
type MemoryStore struct {
	mu       sync.RWMutex
	messages []types.Message
	cap      int
}

// NewMemoryStore creates an in-memory store. A non-positive limit uses
// DefaultMemoryCap.
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultMemoryCap
	}
	return &MemoryStore{cap: limit}
}

// Append adds msg, trimming the oldest entry once the cap is exceeded.
func (s *MemoryStore) Append(_ context.Context, msg types.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
	if len(s.messages) > s.cap {
		s.messages = s.messages[len(s.messages)-s.cap:]
	}
	return nil
}

// RecentWindow returns up to limit most-recent messages, oldest first.
func (s *MemoryStore) RecentWindow(_ context.Context, limit int) ([]types.Message, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.messages) {
		limit = len(s.messages)
	}
	window := make([]types.Message, limit)
	copy(window, s.messages[len(s.messages)-limit:])
	return window, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
