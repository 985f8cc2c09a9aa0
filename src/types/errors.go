package types

import "errors"

var (
	// ErrInvalidIdentity is returned when a join carries an empty name.
	// It is reported to the requester only; the join does not proceed.
	ErrInvalidIdentity = errors.New("invalid identity")

	// ErrMalformedMessage marks a chat message missing its sender or text.
	// Such messages are dropped silently, never surfaced to users.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrStoreUnavailable wraps history store failures. The hub degrades
	// (empty replay, skipped persist) and keeps serving.
	ErrStoreUnavailable = errors.New("history store unavailable")
)
