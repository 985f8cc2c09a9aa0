package hub

import (
	"sync"
	"time"

	"github.com/relaychat/relay/src/types"
)

// Client binds one transport connection to at most one display name for
// its lifetime. It holds no roster or history state; it is an address
// plus an identity.
type Client struct {
	ID          string
	conn        types.Conn
	hub         *Hub
	Send        chan types.Envelope
	connectedAt time.Time
	identity    string
	mu          sync.RWMutex
	done        chan struct{}
	closed      bool
}

// NewClient creates a client wrapper around a connection. The identity
// stays empty until a join completes.
func NewClient(id string, conn types.Conn, h *Hub) *Client {
	return &Client{
		ID:          id,
		conn:        conn,
		hub:         h,
		Send:        make(chan types.Envelope, 256),
		connectedAt: time.Now(),
		done:        make(chan struct{}),
	}
}

// Identity returns the display name bound to this connection, or "" when
// the client has not joined.
func (c *Client) Identity() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity
}

func (c *Client) setIdentity(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = name
}

// Deliver queues an envelope for the write pump without blocking. It
// reports false when the client is closed or its buffer is full; a failed
// delivery is always a silent drop for the caller.
func (c *Client) Deliver(env types.Envelope) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- env:
		return true
	default:
		return false
	}
}

// ReadPump reads client events and dispatches them to the hub. It runs
// until the connection fails, then triggers the leave sequence.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		var ev types.ClientEvent
		if err := c.conn.ReadJSON(&ev); err != nil {
			return
		}

		switch ev.Event {
		case types.EventJoin:
			if err := c.hub.Join(c, ev.Name); err != nil {
				c.Deliver(types.Envelope{Event: types.EventError, Error: err.Error()})
			}
		case types.EventChat:
			if ev.Message != nil {
				c.hub.Chat(c, *ev.Message)
			}
		case types.EventTyping:
			if ev.Typing != nil {
				c.hub.Typing(c, *ev.Typing)
			}
		default:
			c.hub.logger.Debug().Str("client_id", c.ID).Str("event", ev.Event).Msg("unknown event")
		}
	}
}

// WritePump writes queued envelopes to the connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for {
		select {
		case env, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(env); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Close signals the client to stop its pumps. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
		close(c.Send)
	}
}
