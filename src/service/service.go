package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/relaychat/relay/src/history"
	"github.com/relaychat/relay/src/hub"
	"github.com/relaychat/relay/src/types"
)

// Service exposes the relay's read-side API to the HTTP surface.
type Service struct {
	hub    *hub.Hub
	store  history.Store
	logger zerolog.Logger
}

// New creates a service over the given hub and history store.
func New(h *hub.Hub, store history.Store, logger zerolog.Logger) *Service {
	return &Service{hub: h, store: store, logger: logger}
}

// Hub returns the underlying hub.
func (s *Service) Hub() *hub.Hub { return s.hub }

// Roster returns the display names of all registered users.
func (s *Service) Roster() []string {
	return s.hub.Roster()
}

// OnlineCount returns the number of registered users.
func (s *Service) OnlineCount() int {
	return s.hub.OnlineCount()
}

// ClientCount returns the number of open connections.
func (s *Service) ClientCount() int {
	return s.hub.ClientCount()
}

// History returns up to limit most-recent messages, oldest first.
func (s *Service) History(ctx context.Context, limit int) ([]types.Message, error) {
	window, err := s.store.RecentWindow(ctx, limit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("history window fetch failed")
		return nil, err
	}
	s.logger.Debug().Int("messages", len(window)).Msg("history window served")
	return window, nil
}
