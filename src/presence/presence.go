// Package presence tracks which display names are online and which
// connection each one maps to. It is the single source of truth for
// directed-message routing and roster broadcasts.
package presence

import (
	"sort"
	"sync"

	"github.com/relaychat/relay/src/types"
)

// Registry maps display names to live connection handles. All operations
// are safe for concurrent use; the lock never spans I/O.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]types.Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]types.Handle)}
}

// Register inserts or overwrites the mapping for name. A later join with
// the same name silently replaces the earlier handle; the earlier
// connection is not notified.
func (r *Registry) Register(name string, h types.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = h
}

// Unregister removes the mapping for name. It is a no-op when the name is
// absent, so a double disconnect is safe.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Lookup resolves a directed-message target.
func (r *Registry) Lookup(name string) (types.Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.entries[name]
	return h, ok
}

// Snapshot returns the current roster as a sorted name list. The result is
// a consistent point-in-time view.
func (r *Registry) Snapshot() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Handles returns the handles of all registered users, for broadcast
// fan-out. Copied out so delivery happens without holding the lock.
func (r *Registry) Handles() []types.Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handles := make([]types.Handle, 0, len(r.entries))
	for _, h := range r.entries {
		handles = append(handles, h)
	}
	return handles
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
