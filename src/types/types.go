package types

import "time"

// BroadcastAll is the recipient value that addresses every registered user.
const BroadcastAll = "all"

// SystemUser is the sender of join/leave announcements.
const SystemUser = "System"

// Inbound event names, sent by clients.
const (
	EventJoin   = "join"
	EventChat   = "chat message"
	EventTyping = "typing"
)

// Outbound event names, sent by the hub.
const (
	EventUserList = "user list"
	EventHistory  = "history"
	EventError    = "error"
)

// Message is a chat message. To is either a registered display name or
// BroadcastAll. Time is stamped by the hub at receipt; client-supplied
// values are overwritten.
type Message struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

// Typing is an advisory typing indicator. It is never persisted.
type Typing struct {
	From string `json:"from"`
	To   string `json:"to,omitempty"`
}

// Envelope is an outbound frame written to a client connection.
// Event selects which payload field is set.
type Envelope struct {
	Event   string    `json:"event"`
	Message *Message  `json:"message,omitempty"`
	Users   []string  `json:"users,omitempty"`
	History []Message `json:"history,omitempty"`
	Typing  *Typing   `json:"typing,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// ClientEvent is an inbound frame read from a client connection.
type ClientEvent struct {
	Event   string   `json:"event"`
	Name    string   `json:"name,omitempty"`
	Message *Message `json:"message,omitempty"`
	Typing  *Typing  `json:"typing,omitempty"`
}

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	WriteJSON(v any) error
	ReadJSON(v any) error
	Close() error
}

// Handle addresses one live connection for delivery. Deliver must never
// block; it reports false when the frame was dropped.
type Handle interface {
	Deliver(env Envelope) bool
}
