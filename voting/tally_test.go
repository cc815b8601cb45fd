// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/testutil"
	"github.com/danielhkuo/pollgram/voting"
)

func TestTally_MultiSelectAdditive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := testutil.CreateTestUser(t, f.store, "creator")
	poll := testutil.CreateTestPoll(t, f.store, creator,
		testutil.WithChoices(1, 2, 3), testutil.WithBounds(1, 3))

	ballots := [][]int{{1, 2}, {2, 3}, {1, 2, 3}, {3}}
	for i, b := range ballots {
		u := testutil.CreateTestUser(t, f.store, fmt.Sprintf("voter%d", i))
		testutil.CreateTestVote(t, f.store, poll, u, b...)
	}

	tally, err := f.svc.TallyPoll(ctx, poll)
	require.NoError(t, err)
	assert.Equal(t, int64(2), tally.CountVotes(1))
	assert.Equal(t, int64(3), tally.CountVotes(2))
	assert.Equal(t, int64(3), tally.CountVotes(3))
	assert.Equal(t, int64(0), tally.CountVotes(9))
	assert.Equal(t, int64(8), tally.AllVotesCount())
}

func TestTally_Empty(t *testing.T) {
	var tally voting.Tally
	assert.Zero(t, tally.CountVotes(1))
	assert.Zero(t, tally.AllVotesCount())
}

func TestVotersFor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := testutil.CreateTestUser(t, f.store, "creator")
	poll := testutil.CreateTestPoll(t, f.store, creator, testutil.WithVisibility(models.Visible))

	var names []string
	for i := 0; i < 25; i++ {
		u := testutil.CreateTestUser(t, f.store, fmt.Sprintf("voter%02d", i))
		testutil.CreateTestVote(t, f.store, poll, u, 1)
		names = append(names, u.Username)
	}

	page, err := f.svc.VotersFor(ctx, poll.ID, 1, voting.Viewer{}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Count)
	assert.Equal(t, models.VoterPageSize, page.PageSize)
	require.Len(t, page.Results, 20)
	assert.Equal(t, names[24], page.Results[0].Username)

	page, err = f.svc.VotersFor(ctx, poll.ID, 1, voting.Viewer{}, 2, 20)
	require.NoError(t, err)
	require.Len(t, page.Results, 5)
	assert.Equal(t, names[0], page.Results[4].Username)

	page, err = f.svc.VotersFor(ctx, poll.ID, 2, voting.Viewer{}, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, models.VoterMaxPageSize, page.PageSize)
	assert.Empty(t, page.Results)

	_, err = f.svc.VotersFor(ctx, poll.ID, 9, voting.Viewer{}, 1, 20)
	requireKind(t, err, voting.KindNotFound, voting.MsgChoiceNotFound)
}

func TestVotersFor_Gates(t *testing.T) {
	ctx := context.Background()

	t.Run("results hidden until voting", func(t *testing.T) {
		f := newFixture(t)
		creator := testutil.CreateTestUser(t, f.store, "creator")
		reader := testutil.CreateTestUser(t, f.store, "reader")
		poll := testutil.CreateTestPoll(t, f.store, creator)

		_, err := f.svc.VotersFor(ctx, poll.ID, 1, viewer(reader), 1, 20)
		requireKind(t, err, voting.KindForbidden, voting.MsgResultsHidden)

		testutil.CreateTestVote(t, f.store, poll, reader, 2)
		page, err := f.svc.VotersFor(ctx, poll.ID, 2, viewer(reader), 1, 20)
		require.NoError(t, err)
		assert.Len(t, page.Results, 1)
	})

	t.Run("non-public poll", func(t *testing.T) {
		f := newFixture(t)
		creator := testutil.CreateTestUser(t, f.store, "creator")
		poll := testutil.CreateTestPoll(t, f.store, creator,
			testutil.NotPublic(), testutil.WithVisibility(models.Visible))

		_, err := f.svc.VotersFor(ctx, poll.ID, 1, viewer(creator), 1, 20)
		requireKind(t, err, voting.KindForbidden, voting.MsgResultsHidden)
	})

	t.Run("blocked", func(t *testing.T) {
		f := newFixture(t)
		creator := testutil.CreateTestUser(t, f.store, "creator")
		reader := testutil.CreateTestUser(t, f.store, "reader")
		poll := testutil.CreateTestPoll(t, f.store, creator, testutil.WithVisibility(models.Visible))
		require.NoError(t, f.graph.Block(ctx, viewer(creator), reader.ID))

		_, err := f.svc.VotersFor(ctx, poll.ID, 1, viewer(reader), 1, 20)
		requireKind(t, err, voting.KindNotFound, voting.MsgPollNotFound)
	})
}

func TestCharts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := testutil.CreateTestUser(t, f.store, "creator")
	admin := testutil.CreateTestUser(t, f.store, "admin", testutil.Superuser())
	voter := testutil.CreateTestUser(t, f.store, "voter")
	poll := testutil.CreateTestPoll(t, f.store, creator, testutil.WithVisibility(models.Visible))
	testutil.CreateTestVote(t, f.store, poll, voter, 2)

	for _, u := range []*models.User{creator, admin} {
		circle, err := f.svc.CircleChart(ctx, poll.ID, viewer(u))
		require.NoError(t, err)
		assert.Equal(t, []models.ChoiceCount{
			{Order: 1, Context: "48", Count: 0},
			{Order: 2, Context: "22", Count: 1},
		}, circle)

		bars, err := f.svc.BarChartByDay(ctx, poll.ID, viewer(u))
		require.NoError(t, err)
		require.Len(t, bars, 1)
		assert.Equal(t, int64(1), bars[0].Count)
	}

	_, err := f.svc.CircleChart(ctx, poll.ID, viewer(voter))
	requireKind(t, err, voting.KindForbidden, voting.MsgPermissionDenied)
	_, err = f.svc.BarChartByDay(ctx, poll.ID, viewer(voter))
	requireKind(t, err, voting.KindForbidden, voting.MsgPermissionDenied)
	_, err = f.svc.CircleChart(ctx, "missing", viewer(creator))
	requireKind(t, err, voting.KindNotFound, voting.MsgPollNotFound)
}

func TestBucketByDay(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2025, 1, d, h, 0, 0, 0, time.UTC) }

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, []models.DayCount{}, voting.BucketByDay(nil))
	})

	t.Run("fills gaps", func(t *testing.T) {
		got := voting.BucketByDay([]time.Time{day(5, 9), day(3, 1), day(3, 23), day(5, 0)})
		assert.Equal(t, []models.DayCount{
			{Date: "2025-01-03", Count: 2},
			{Date: "2025-01-04", Count: 0},
			{Date: "2025-01-05", Count: 2},
		}, got)
	})

	t.Run("buckets in UTC", func(t *testing.T) {
		east := time.FixedZone("UTC+9", 9*3600)
		// 2025-01-03 02:00 local is 2025-01-02 17:00 UTC
		ts := time.Date(2025, 1, 3, 2, 0, 0, 0, east)
		assert.Equal(t, []models.DayCount{{Date: "2025-01-02", Count: 1}}, voting.BucketByDay([]time.Time{ts}))
	})

	t.Run("month boundary", func(t *testing.T) {
		got := voting.BucketByDay([]time.Time{
			time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
		})
		require.Len(t, got, 2)
		assert.Equal(t, "2025-02-01", got[1].Date)
	})
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		kind   voting.Kind
		status int
	}{
		{voting.KindValidation, 400},
		{voting.KindBadRequest, 400},
		{voting.KindUnknownChoice, 400},
		{voting.KindUnauthorized, 401},
		{voting.KindForbidden, 403},
		{voting.KindNotFound, 404},
		{voting.KindConflict, 409},
		{voting.KindUnprocessable, 422},
		{voting.KindInternal, 500},
		{voting.KindUnavailable, 503},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.kind.HTTPStatus())
		})
	}

	wrapped := voting.Unavailable(fmt.Errorf("disk gone"), "failed to load poll")
	assert.Equal(t, voting.KindUnavailable, voting.KindOf(wrapped))
	assert.Contains(t, wrapped.Error(), "disk gone")
	assert.Equal(t, voting.KindInternal, voting.KindOf(fmt.Errorf("plain")))
	assert.False(t, voting.IsKind(nil, voting.KindInternal))
}
