// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mockstore

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/danielhkuo/pollgram/models"
)

type PollStore struct{ mock.Mock }

func (m *PollStore) Create(ctx context.Context, poll *models.Poll) error {
	return m.Called(ctx, poll).Error(0)
}

func (m *PollStore) Get(ctx context.Context, id string) (*models.Poll, error) {
	ret := m.Called(ctx, id)
	poll, _ := ret.Get(0).(*models.Poll)
	return poll, ret.Error(1)
}

func (m *PollStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PollStore) ListByCreators(ctx context.Context, creatorIDs []string, offset, limit int) ([]models.Poll, int64, error) {
	ret := m.Called(ctx, creatorIDs, offset, limit)
	polls, _ := ret.Get(0).([]models.Poll)
	return polls, ret.Get(1).(int64), ret.Error(2)
}

type VoteStore struct{ mock.Mock }

func (m *VoteStore) Insert(ctx context.Context, vote *models.Vote, choiceIDs []uint) error {
	return m.Called(ctx, vote, choiceIDs).Error(0)
}

func (m *VoteStore) Delete(ctx context.Context, pollID, userID string) error {
	return m.Called(ctx, pollID, userID).Error(0)
}

func (m *VoteStore) Exists(ctx context.Context, pollID, userID string) (bool, error) {
	ret := m.Called(ctx, pollID, userID)
	return ret.Bool(0), ret.Error(1)
}

func (m *VoteStore) CountByChoice(ctx context.Context, pollID string) (map[uint]int64, error) {
	ret := m.Called(ctx, pollID)
	counts, _ := ret.Get(0).(map[uint]int64)
	return counts, ret.Error(1)
}

func (m *VoteStore) ChoiceOrders(ctx context.Context, pollID, userID string) ([]int, error) {
	ret := m.Called(ctx, pollID, userID)
	orders, _ := ret.Get(0).([]int)
	return orders, ret.Error(1)
}

func (m *VoteStore) Voters(ctx context.Context, choiceID uint, offset, limit int) ([]models.User, int64, error) {
	ret := m.Called(ctx, choiceID, offset, limit)
	users, _ := ret.Get(0).([]models.User)
	return users, ret.Get(1).(int64), ret.Error(2)
}

func (m *VoteStore) CreatedTimes(ctx context.Context, pollID string) ([]time.Time, error) {
	ret := m.Called(ctx, pollID)
	times, _ := ret.Get(0).([]time.Time)
	return times, ret.Error(1)
}

type UserStore struct{ mock.Mock }

func (m *UserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	ret := m.Called(ctx, id)
	user, _ := ret.Get(0).(*models.User)
	return user, ret.Error(1)
}

func (m *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ret := m.Called(ctx, username)
	user, _ := ret.Get(0).(*models.User)
	return user, ret.Error(1)
}

func (m *UserStore) SetPublic(ctx context.Context, id string, public bool) error {
	return m.Called(ctx, id, public).Error(0)
}

type FollowStore struct{ mock.Mock }

func (m *FollowStore) Get(ctx context.Context, followerID, followeeID string) (*models.FollowRelationship, error) {
	ret := m.Called(ctx, followerID, followeeID)
	rel, _ := ret.Get(0).(*models.FollowRelationship)
	return rel, ret.Error(1)
}

func (m *FollowStore) Create(ctx context.Context, rel *models.FollowRelationship) error {
	return m.Called(ctx, rel).Error(0)
}

func (m *FollowStore) Accept(ctx context.Context, followerID, followeeID string) error {
	return m.Called(ctx, followerID, followeeID).Error(0)
}

func (m *FollowStore) Delete(ctx context.Context, followerID, followeeID string) error {
	return m.Called(ctx, followerID, followeeID).Error(0)
}

func (m *FollowStore) AcceptAllPending(ctx context.Context, followeeID string) (int64, error) {
	ret := m.Called(ctx, followeeID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *FollowStore) Followees(ctx context.Context, followerID string) ([]string, error) {
	ret := m.Called(ctx, followerID)
	ids, _ := ret.Get(0).([]string)
	return ids, ret.Error(1)
}

func (m *FollowStore) Block(ctx context.Context, blockerID, blockedID string) error {
	return m.Called(ctx, blockerID, blockedID).Error(0)
}

func (m *FollowStore) Unblock(ctx context.Context, blockerID, blockedID string) error {
	return m.Called(ctx, blockerID, blockedID).Error(0)
}

func (m *FollowStore) IsBlocked(ctx context.Context, a, b string) (bool, error) {
	ret := m.Called(ctx, a, b)
	return ret.Bool(0), ret.Error(1)
}

func (m *FollowStore) users(ret mock.Arguments) ([]models.User, int64, error) {
	users, _ := ret.Get(0).([]models.User)
	return users, ret.Get(1).(int64), ret.Error(2)
}

func (m *FollowStore) Followers(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error) {
	return m.users(m.Called(ctx, userID, offset, limit))
}

func (m *FollowStore) Followings(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error) {
	return m.users(m.Called(ctx, userID, offset, limit))
}

func (m *FollowStore) PendingRequests(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error) {
	return m.users(m.Called(ctx, userID, offset, limit))
}

func (m *FollowStore) BlockedBy(ctx context.Context, blockerID string, offset, limit int) ([]models.User, int64, error) {
	return m.users(m.Called(ctx, blockerID, offset, limit))
}

type NotificationStore struct{ mock.Mock }

func (m *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationStore) List(ctx context.Context, recipientID string, offset, limit int) ([]models.Notification, int64, error) {
	ret := m.Called(ctx, recipientID, offset, limit)
	list, _ := ret.Get(0).([]models.Notification)
	return list, ret.Get(1).(int64), ret.Error(2)
}

func (m *NotificationStore) MarkAllRead(ctx context.Context, recipientID string) error {
	return m.Called(ctx, recipientID).Error(0)
}

func (m *NotificationStore) ListUnread(ctx context.Context, recipientID string, offset, limit int) ([]models.Notification, int64, error) {
	ret := m.Called(ctx, recipientID, offset, limit)
	list, _ := ret.Get(0).([]models.Notification)
	return list, ret.Get(1).(int64), ret.Error(2)
}

func (m *NotificationStore) Count(ctx context.Context, recipientID string, unreadOnly bool) (int64, error) {
	ret := m.Called(ctx, recipientID, unreadOnly)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *NotificationStore) SetRead(ctx context.Context, recipientID string, id uint, read bool) error {
	return m.Called(ctx, recipientID, id, read).Error(0)
}
