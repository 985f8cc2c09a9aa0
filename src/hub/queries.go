package hub

// Roster returns the current list of registered display names.
func (h *Hub) Roster() []string {
	return h.presence.Snapshot()
}

// OnlineCount returns the number of registered users.
func (h *Hub) OnlineCount() int {
	return h.presence.Len()
}

// ClientCount returns the number of open connections, including those
// that have not joined yet.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
