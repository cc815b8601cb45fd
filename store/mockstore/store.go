// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mockstore

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/danielhkuo/pollgram/store"
)

// Store is a mock store
type Store struct {
	PollStore         PollStore
	VoteStore         VoteStore
	UserStore         UserStore
	FollowStore       FollowStore
	NotificationStore NotificationStore
	mock.Mock
}

func (s *Store) Poll() store.PollStore                 { return &s.PollStore }
func (s *Store) Vote() store.VoteStore                 { return &s.VoteStore }
func (s *Store) User() store.UserStore                 { return &s.UserStore }
func (s *Store) Follow() store.FollowStore             { return &s.FollowStore }
func (s *Store) Notification() store.NotificationStore { return &s.NotificationStore }

func (s *Store) Ping(ctx context.Context) error {
	return s.Called(ctx).Error(0)
}

// AssertExpectations makes sure the expectations of all stores are met
func (s *Store) AssertExpectations(t mock.TestingT) {
	s.PollStore.AssertExpectations(t)
	s.VoteStore.AssertExpectations(t)
	s.UserStore.AssertExpectations(t)
	s.FollowStore.AssertExpectations(t)
	s.NotificationStore.AssertExpectations(t)
	s.Mock.AssertExpectations(t)
}
