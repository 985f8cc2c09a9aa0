package hub

import (
	"github.com/relaychat/relay/src/types"
)

// broadcastToRegistered delivers env to every registered user's handle,
// including the sender when they are registered.
func (h *Hub) broadcastToRegistered(env types.Envelope) {
	for _, handle := range h.presence.Handles() {
		handle.Deliver(env)
	}
}

// broadcastToConnections delivers env to every connection, joined or
// not. Roster updates and system announcements use this path.
func (h *Hub) broadcastToConnections(env types.Envelope) {
	for _, c := range h.connectionSnapshot() {
		c.Deliver(env)
	}
}

// broadcastRoster sends the current user list to every connection.
func (h *Hub) broadcastRoster() {
	h.broadcastToConnections(types.Envelope{Event: types.EventUserList, Users: h.presence.Snapshot()})
}

// broadcastExcept delivers env to every connection except sender.
func (h *Hub) broadcastExcept(sender *Client, env types.Envelope) {
	for _, c := range h.connectionSnapshot() {
		if c == sender {
			continue
		}
		c.Deliver(env)
	}
}

// connectionSnapshot copies the connection set so delivery happens
// without holding the lock.
func (h *Hub) connectionSnapshot() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	return clients
}
