// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
	"github.com/danielhkuo/pollgram/testutil"
)

func TestPing(t *testing.T) {
	s := testutil.SetupTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestUserStore(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	u := testutil.CreateTestUser(t, s, "alice")

	got, err := s.User().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.IsPublic)

	err = s.User().Create(ctx, &models.User{ID: "other-id", Username: "alice"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	require.NoError(t, s.User().SetPublic(ctx, u.ID, false))
	got, err = s.User().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublic)

	assert.ErrorIs(t, s.User().SetPublic(ctx, "missing", true), store.ErrNotFound)
	_, err = s.User().Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPollStore_CreateGet(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	creator := testutil.CreateTestUser(t, s, "creator")
	poll := testutil.CreateTestPoll(t, s, creator, testutil.WithChoices(5, 1, 3))

	got, err := s.Poll().Get(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, creator.Username, got.Creator.Username)
	require.Len(t, got.Choices, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{got.Choices[0].Order, got.Choices[1].Order, got.Choices[2].Order})
	for _, c := range got.Choices {
		assert.NotZero(t, c.ID)
		assert.Equal(t, poll.ID, c.PollID)
	}

	_, err = s.Poll().Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPollStore_DuplicateChoiceOrder(t *testing.T) {
	s := testutil.SetupTestStore(t)
	creator := testutil.CreateTestUser(t, s, "creator")
	poll := &models.Poll{
		ID:               "dup",
		CreatorID:        creator.ID,
		Question:         "q",
		VisibilityStatus: models.Visible,
		MinChoiceCanVote: 1,
		MaxChoiceCanVote: 1,
		Choices:          []models.Choice{{Order: 1, Context: "a"}, {Order: 1, Context: "b"}},
	}
	err := s.Poll().Create(context.Background(), poll)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	// The transaction leaves no orphan poll behind
	_, err = s.Poll().Get(context.Background(), "dup")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPollStore_DeleteCascades(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	creator := testutil.CreateTestUser(t, s, "creator")
	voter := testutil.CreateTestUser(t, s, "voter")
	poll := testutil.CreateTestPoll(t, s, creator, testutil.WithBounds(1, 2))
	keep := testutil.CreateTestPoll(t, s, creator)
	testutil.CreateTestVote(t, s, poll, voter, 1, 2)
	testutil.CreateTestVote(t, s, keep, voter, 1)
	require.NoError(t, s.Notification().Create(ctx, &models.Notification{
		RecipientID: creator.ID, ActorID: voter.ID, Verb: models.VerbVoteOnYourPoll, PollID: &poll.ID,
	}))

	require.NoError(t, s.Poll().Delete(ctx, poll.ID))

	_, err := s.Poll().Get(ctx, poll.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	counts, err := s.Vote().CountByChoice(ctx, poll.ID)
	require.NoError(t, err)
	assert.Empty(t, counts)
	list, total, err := s.Notification().List(ctx, creator.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	voted, err := s.Vote().Exists(ctx, keep.ID, voter.ID)
	require.NoError(t, err)
	assert.True(t, voted)

	assert.ErrorIs(t, s.Poll().Delete(ctx, poll.ID), store.ErrNotFound)
}

func TestPollStore_ListByCreators(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	a := testutil.CreateTestUser(t, s, "a")
	b := testutil.CreateTestUser(t, s, "b")
	c := testutil.CreateTestUser(t, s, "c")
	for i := 0; i < 3; i++ {
		testutil.CreateTestPoll(t, s, a)
		testutil.CreateTestPoll(t, s, b)
		testutil.CreateTestPoll(t, s, c)
	}

	polls, total, err := s.Poll().ListByCreators(ctx, []string{a.ID, b.ID}, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Len(t, polls, 4)
	for _, p := range polls {
		assert.NotEqual(t, c.ID, p.CreatorID)
		assert.Len(t, p.Choices, 2)
		assert.NotEmpty(t, p.Creator.Username)
	}

	polls, total, err = s.Poll().ListByCreators(ctx, nil, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, polls)
}

func TestVoteStore(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	creator := testutil.CreateTestUser(t, s, "creator")
	poll := testutil.CreateTestPoll(t, s, creator, testutil.WithChoices(1, 2, 3), testutil.WithBounds(1, 3))
	c1, _ := poll.ChoiceByOrder(1)
	c3, _ := poll.ChoiceByOrder(3)

	var voters []*models.User
	for i := 0; i < 3; i++ {
		voters = append(voters, testutil.CreateTestUser(t, s, fmt.Sprintf("v%d", i)))
	}
	testutil.CreateTestVote(t, s, poll, voters[0], 1, 3)
	testutil.CreateTestVote(t, s, poll, voters[1], 3)
	testutil.CreateTestVote(t, s, poll, voters[2], 3, 1)

	err := s.Vote().Insert(ctx, &models.Vote{PollID: poll.ID, UserID: voters[0].ID}, []uint{c1.ID})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	counts, err := s.Vote().CountByChoice(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{c1.ID: 2, c3.ID: 3}, counts)

	orders, err := s.Vote().ChoiceOrders(ctx, poll.ID, voters[2].ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, orders)

	users, total, err := s.Vote().Voters(ctx, c3.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, voters[2].ID, users[0].ID)
	assert.Equal(t, voters[1].ID, users[1].ID)

	times, err := s.Vote().CreatedTimes(ctx, poll.ID)
	require.NoError(t, err)
	assert.Len(t, times, 3)

	require.NoError(t, s.Vote().Delete(ctx, poll.ID, voters[0].ID))
	assert.ErrorIs(t, s.Vote().Delete(ctx, poll.ID, voters[0].ID), store.ErrNotFound)
	counts, err = s.Vote().CountByChoice(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{c1.ID: 1, c3.ID: 2}, counts)

	// Choices survive vote deletion
	got, err := s.Poll().Get(ctx, poll.ID)
	require.NoError(t, err)
	assert.Len(t, got.Choices, 3)
}

func TestFollowStore(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, s, "owner", testutil.Private())
	a := testutil.CreateTestUser(t, s, "a")
	b := testutil.CreateTestUser(t, s, "b")

	require.NoError(t, s.Follow().Create(ctx, &models.FollowRelationship{FollowerID: a.ID, FolloweeID: owner.ID, Pending: true}))
	require.NoError(t, s.Follow().Create(ctx, &models.FollowRelationship{FollowerID: b.ID, FolloweeID: owner.ID, Pending: true}))
	err := s.Follow().Create(ctx, &models.FollowRelationship{FollowerID: a.ID, FolloweeID: owner.ID})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	ids, err := s.Follow().Followees(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, s.Follow().Accept(ctx, a.ID, owner.ID))
	assert.ErrorIs(t, s.Follow().Accept(ctx, a.ID, owner.ID), store.ErrNotFound)
	ids, err = s.Follow().Followees(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{owner.ID}, ids)

	n, err := s.Follow().AcceptAllPending(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	rel, err := s.Follow().Get(ctx, b.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, rel.Pending)

	require.NoError(t, s.Follow().Block(ctx, owner.ID, b.ID))
	assert.ErrorIs(t, s.Follow().Block(ctx, owner.ID, b.ID), store.ErrDuplicate)
	_, err = s.Follow().Get(ctx, b.ID, owner.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	blocked, err := s.Follow().IsBlocked(ctx, b.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, blocked)

	require.NoError(t, s.Follow().Unblock(ctx, owner.ID, b.ID))
	assert.ErrorIs(t, s.Follow().Unblock(ctx, owner.ID, b.ID), store.ErrNotFound)

	require.NoError(t, s.Follow().Delete(ctx, a.ID, owner.ID))
	assert.ErrorIs(t, s.Follow().Delete(ctx, a.ID, owner.ID), store.ErrNotFound)
}

func TestNotificationStore(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	me := testutil.CreateTestUser(t, s, "me")
	other := testutil.CreateTestUser(t, s, "other")

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Notification().Create(ctx, &models.Notification{
			RecipientID: me.ID, ActorID: other.ID, Verb: models.VerbFollow,
		}))
	}
	require.NoError(t, s.Notification().Create(ctx, &models.Notification{
		RecipientID: other.ID, ActorID: me.ID, Verb: models.VerbFollow,
	}))

	list, total, err := s.Notification().List(ctx, me.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.Greater(t, list[0].ID, list[1].ID)
	assert.False(t, list[0].Read)

	require.NoError(t, s.Notification().MarkAllRead(ctx, me.ID))
	list, _, err = s.Notification().List(ctx, me.ID, 0, 10)
	require.NoError(t, err)
	for _, n := range list {
		assert.True(t, n.Read)
	}

	list, _, err = s.Notification().List(ctx, other.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Read)
}

func TestFollowStore_Listings(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, s, "owner")
	a := testutil.CreateTestUser(t, s, "a")
	b := testutil.CreateTestUser(t, s, "b")
	c := testutil.CreateTestUser(t, s, "c")

	require.NoError(t, s.Follow().Create(ctx, &models.FollowRelationship{FollowerID: a.ID, FolloweeID: owner.ID}))
	require.NoError(t, s.Follow().Create(ctx, &models.FollowRelationship{FollowerID: b.ID, FolloweeID: owner.ID}))
	require.NoError(t, s.Follow().Create(ctx, &models.FollowRelationship{FollowerID: c.ID, FolloweeID: owner.ID, Pending: true}))
	require.NoError(t, s.Follow().Create(ctx, &models.FollowRelationship{FollowerID: owner.ID, FolloweeID: a.ID}))

	users, total, err := s.Follow().Followers(ctx, owner.ID, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 1)
	assert.Equal(t, "b", users[0].Username)

	users, total, err = s.Follow().Followings(ctx, owner.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, a.ID, users[0].ID)

	users, _, err = s.Follow().PendingRequests(ctx, owner.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, c.ID, users[0].ID)

	require.NoError(t, s.Follow().Block(ctx, owner.ID, b.ID))
	users, total, err = s.Follow().BlockedBy(ctx, owner.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, b.ID, users[0].ID)

	_, total, err = s.Follow().Followers(ctx, owner.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestNotificationStore_ReadState(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	me := testutil.CreateTestUser(t, s, "me")
	other := testutil.CreateTestUser(t, s, "other")

	first := &models.Notification{RecipientID: me.ID, ActorID: other.ID, Verb: models.VerbFollow}
	second := &models.Notification{RecipientID: me.ID, ActorID: other.ID, Verb: models.VerbFollowAccept}
	require.NoError(t, s.Notification().Create(ctx, first))
	require.NoError(t, s.Notification().Create(ctx, second))

	require.NoError(t, s.Notification().SetRead(ctx, me.ID, first.ID, true))
	// Setting the current value still finds the row
	require.NoError(t, s.Notification().SetRead(ctx, me.ID, first.ID, true))
	assert.ErrorIs(t, s.Notification().SetRead(ctx, other.ID, first.ID, false), store.ErrNotFound)

	unread, err := s.Notification().Count(ctx, me.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
	all, err := s.Notification().Count(ctx, me.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all)

	list, total, err := s.Notification().ListUnread(ctx, me.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	require.NoError(t, s.Notification().SetRead(ctx, me.ID, first.ID, false))
	unread, err = s.Notification().Count(ctx, me.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)
}
