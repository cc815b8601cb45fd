// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/danielhkuo/pollgram/event"
	"github.com/danielhkuo/pollgram/metrics"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
)

// Publisher receives domain events after a successful commit.
type Publisher interface {
	PublishAsync(evt event.Event) bool
}

// Service ties the poll catalog, vote ledger, visibility resolver and
// tally engine to a store.
type Service struct {
	store    store.Store
	resolver *Resolver
	bus      Publisher
	metrics  *metrics.Metrics
	strict   bool
}

type Option func(*Service)

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.bus = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithStrictChoiceOrders makes Cast reject selections naming an order the
// poll does not have, instead of dropping them.
func WithStrictChoiceOrders(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

func NewService(st store.Store, graph FollowGraph, opts ...Option) *Service {
	s := &Service{
		store:    st,
		resolver: NewResolver(st.Vote(), graph),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Resolver() *Resolver {
	return s.resolver
}

func (s *Service) publish(eventType event.EventType, data any) {
	if s.bus == nil {
		return
	}
	if !s.bus.PublishAsync(event.NewEvent(eventType, data)) {
		slog.Warn("event not published", "type", eventType)
	}
}

func (s *Service) loadPoll(ctx context.Context, id string) (*models.Poll, error) {
	poll, err := s.store.Poll().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NewError(KindNotFound, MsgPollNotFound)
	}
	if err != nil {
		return nil, Unavailable(err, "failed to load poll")
	}
	return poll, nil
}

// loadVisiblePoll loads the poll and applies the block and view checks.
func (s *Service) loadVisiblePoll(ctx context.Context, id string, viewer Viewer) (*models.Poll, error) {
	poll, err := s.loadPoll(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.CheckNotBlocked(ctx, poll.CreatorID, viewer, MsgPollNotFound); err != nil {
		return nil, err
	}
	if err := s.resolver.CheckCanView(ctx, &poll.Creator, viewer); err != nil {
		return nil, err
	}
	return poll, nil
}
