// Package history persists chat messages and serves the bounded replay
// window delivered to newly joined connections.
package history

import (
	"context"

	"github.com/relaychat/relay/src/types"
)

// Store is the boundary toward message persistence. Append failures wrap
// types.ErrStoreUnavailable; callers degrade instead of surfacing them.
type Store interface {
	// Append persists one message.
	Append(ctx context.Context, msg types.Message) error

	// RecentWindow returns up to limit most-recent messages, oldest
	// first. A non-positive limit yields an empty window.
	RecentWindow(ctx context.Context, limit int) ([]types.Message, error)

	// Close releases the store's resources.
	Close() error
}
