// Package hub routes chat traffic: it binds connections to identities,
// fans out broadcasts and directed messages, and runs the join/leave
// lifecycle with roster updates and system announcements.
package hub

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/relaychat/relay/src/history"
	"github.com/relaychat/relay/src/presence"
	"github.com/relaychat/relay/src/types"
)

const (
	historyFetchTimeout = 5 * time.Second
	persistTimeout      = 5 * time.Second
)

// Hub routes chat traffic between connected clients. It owns the
// connection set, resolves recipients through the presence registry, and
// feeds a bounded queue that persists messages to the history store
// without blocking delivery.
type Hub struct {
	clients  map[string]*Client
	presence *presence.Registry
	store    history.Store

	register   chan *Client
	unregister chan *Client
	persist    chan types.Message

	historyLimit int

	mu     sync.RWMutex
	logger zerolog.Logger
	done   chan struct{}
}

// New creates a hub backed by the given registry and history store.
// historyLimit bounds the replay window delivered on join.
func New(reg *presence.Registry, store history.Store, historyLimit int, logger zerolog.Logger) *Hub {
	return &Hub{
		clients:      make(map[string]*Client),
		presence:     reg,
		store:        store,
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		persist:      make(chan types.Message, 256),
		historyLimit: historyLimit,
		logger:       logger,
		done:         make(chan struct{}),
	}
}

// Run starts the hub event loop and the persistence worker. Call in a
// goroutine.
func (h *Hub) Run() {
	go h.persistLoop()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			h.closeClients()
			return
		}
	}
}

// Stop halts the hub event loop and closes all client connections.
func (h *Hub) Stop() {
	close(h.done)
}

// Register queues a client for registration.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister queues a client for removal.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Join binds a display name to the client's connection. The joiner gets
// the history window first, then everyone gets the updated roster and a
// system announcement. A store failure degrades to an empty window.
func (h *Hub) Join(c *Client, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.ErrInvalidIdentity
	}

	c.setIdentity(name)
	h.presence.Register(name, c)

	ctx, cancel := context.WithTimeout(context.Background(), historyFetchTimeout)
	window, err := h.store.RecentWindow(ctx, h.historyLimit)
	cancel()
	if err != nil {
		h.logger.Warn().Err(err).Str("user", name).Msg("history fetch failed, joining with empty backlog")
		window = nil
	}
	c.Deliver(types.Envelope{Event: types.EventHistory, History: window})

	h.broadcastRoster()

	sys := systemMessage(name + " joined the chat")
	h.broadcastToConnections(types.Envelope{Event: types.EventChat, Message: &sys})
	h.enqueuePersist(sys)

	h.logger.Info().Str("user", name).Str("client_id", c.ID).Msg("user joined")
	return nil
}

// Chat routes one message. Broadcasts go to every registered user;
// directed messages go to the target plus an echo to the sending
// connection, whether or not the target exists. The message is queued for
// persistence after delivery.
func (h *Hub) Chat(c *Client, msg types.Message) {
	if msg.From == "" || msg.Text == "" {
		h.logger.Debug().Err(types.ErrMalformedMessage).Str("client_id", c.ID).Msg("dropping chat message")
		return
	}
	if msg.To == "" {
		msg.To = types.BroadcastAll
	}
	msg.Time = time.Now()

	env := types.Envelope{Event: types.EventChat, Message: &msg}
	if msg.To == types.BroadcastAll {
		h.broadcastToRegistered(env)
	} else {
		if target, ok := h.presence.Lookup(msg.To); ok {
			target.Deliver(env)
		}
		// Sender always sees their own directed message.
		c.Deliver(env)
	}

	h.enqueuePersist(msg)
}

// Typing relays a typing indicator. Directed indicators reach the target
// only; otherwise every connection except the sender. Never persisted.
func (h *Hub) Typing(c *Client, t types.Typing) {
	if t.From == "" {
		return
	}

	env := types.Envelope{Event: types.EventTyping, Typing: &t}
	if t.To != "" && t.To != types.BroadcastAll {
		if target, ok := h.presence.Lookup(t.To); ok {
			target.Deliver(env)
		}
		return
	}
	h.broadcastExcept(c, env)
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()

	h.logger.Info().Str("client_id", c.ID).Msg("client connected")
}

// removeClient runs the leave sequence exactly once per connection. A
// client that never joined produces no roster change or announcement.
func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.ID)
	h.mu.Unlock()

	c.Close()

	name := c.Identity()
	if name == "" {
		h.logger.Debug().Str("client_id", c.ID).Msg("connection closed before join")
		return
	}

	h.presence.Unregister(name)
	h.broadcastRoster()

	sys := systemMessage(name + " left the chat")
	h.broadcastToConnections(types.Envelope{Event: types.EventChat, Message: &sys})
	h.enqueuePersist(sys)

	h.logger.Info().Str("user", name).Str("client_id", c.ID).Msg("user left")
}

func (h *Hub) closeClients() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[string]*Client)
	h.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
	h.logger.Info().Int("count", len(clients)).Msg("closed client connections")
}

// persistLoop drains the persistence queue. Append failures are logged
// and never surfaced; delivery has already happened by the time a message
// reaches this queue.
func (h *Hub) persistLoop() {
	for {
		select {
		case msg := <-h.persist:
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			if err := h.store.Append(ctx, msg); err != nil {
				h.logger.Warn().Err(err).Msg("history append failed")
			}
			cancel()
		case <-h.done:
			return
		}
	}
}

func (h *Hub) enqueuePersist(msg types.Message) {
	select {
	case h.persist <- msg:
	default:
		h.logger.Warn().Msg("persist queue full, dropping message")
	}
}

func systemMessage(text string) types.Message {
	return types.Message{
		From: types.SystemUser,
		To:   types.BroadcastAll,
		Text: text,
		Time: time.Now(),
	}
}
