// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"time"

	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
)

// Tally holds per-choice vote counts keyed by choice order.
type Tally struct {
	counts map[int]int64
}

// NewTally keys the store's per-choice-id counts by order.
func NewTally(poll *models.Poll, byChoiceID map[uint]int64) Tally {
	t := Tally{counts: make(map[int]int64, len(poll.Choices))}
	for _, c := range poll.Choices {
		t.counts[c.Order] = byChoiceID[c.ID]
	}
	return t
}

// CountVotes is the number of votes selecting the choice.
func (t Tally) CountVotes(order int) int64 {
	return t.counts[order]
}

// AllVotesCount sums CountVotes over every choice. A voter who picked
// several choices is counted once per choice.
func (t Tally) AllVotesCount() int64 {
	var total int64
	for _, n := range t.counts {
		total += n
	}
	return total
}

// TallyPoll counts votes per choice. Callers gate it on result visibility.
func (s *Service) TallyPoll(ctx context.Context, poll *models.Poll) (Tally, error) {
	counts, err := s.store.Vote().CountByChoice(ctx, poll.ID)
	if err != nil {
		return Tally{}, Unavailable(err, "failed to count votes")
	}
	return NewTally(poll, counts), nil
}

// UserVotedChoiceOrders returns the orders userID selected, empty if unvoted.
func (s *Service) UserVotedChoiceOrders(ctx context.Context, pollID, userID string) ([]int, error) {
	orders, err := s.store.Vote().ChoiceOrders(ctx, pollID, userID)
	if err != nil {
		return nil, Unavailable(err, "failed to load voted choices")
	}
	if orders == nil {
		orders = []int{}
	}
	return orders, nil
}

// VotersFor lists who voted for the choice, most recent first. The poll
// must be public and its results visible to viewer.
func (s *Service) VotersFor(ctx context.Context, pollID string, order int, viewer Viewer, page, size int) (*models.Page[models.UserSummary], error) {
	poll, err := s.loadVisiblePoll(ctx, pollID, viewer)
	if err != nil {
		return nil, err
	}
	choice, ok := poll.ChoiceByOrder(order)
	if !ok {
		return nil, NewError(KindNotFound, MsgChoiceNotFound)
	}

	canSee, err := s.resolver.CanSeeResults(ctx, poll, viewer)
	if err != nil {
		return nil, err
	}
	if !CanListVoters(poll, canSee) {
		return nil, NewError(KindForbidden, MsgResultsHidden)
	}

	page, size = store.NormalizePage(page, size, models.VoterPageSize, models.VoterMaxPageSize)
	offset, limit := store.Pagination(page, size)
	users, total, err := s.store.Vote().Voters(ctx, choice.ID, offset, limit)
	if err != nil {
		return nil, Unavailable(err, "failed to list voters")
	}

	results := make([]models.UserSummary, 0, len(users))
	for i := range users {
		results = append(results, users[i].Summary())
	}
	return &models.Page[models.UserSummary]{Count: total, Page: page, PageSize: size, Results: results}, nil
}

func (s *Service) loadOwnedPoll(ctx context.Context, pollID string, viewer Viewer) (*models.Poll, error) {
	poll, err := s.loadPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if !viewer.OwnsOrAdministers(poll.CreatorID) {
		return nil, NewError(KindForbidden, MsgPermissionDenied)
	}
	return poll, nil
}

// CircleChart returns per-choice counts for the creator or an admin.
func (s *Service) CircleChart(ctx context.Context, pollID string, viewer Viewer) ([]models.ChoiceCount, error) {
	poll, err := s.loadOwnedPoll(ctx, pollID, viewer)
	if err != nil {
		return nil, err
	}
	tally, err := s.TallyPoll(ctx, poll)
	if err != nil {
		return nil, err
	}
	out := make([]models.ChoiceCount, 0, len(poll.Choices))
	for _, c := range poll.Choices {
		out = append(out, models.ChoiceCount{Order: c.Order, Context: c.Context, Count: tally.CountVotes(c.Order)})
	}
	return out, nil
}

// BarChartByDay returns votes per UTC day for the creator or an admin.
func (s *Service) BarChartByDay(ctx context.Context, pollID string, viewer Viewer) ([]models.DayCount, error) {
	poll, err := s.loadOwnedPoll(ctx, pollID, viewer)
	if err != nil {
		return nil, err
	}
	times, err := s.store.Vote().CreatedTimes(ctx, poll.ID)
	if err != nil {
		return nil, Unavailable(err, "failed to load vote times")
	}
	return BucketByDay(times), nil
}

const dayLayout = "2006-01-02"

// BucketByDay counts timestamps per UTC calendar day, with one entry for
// every day from the earliest to the latest timestamp.
func BucketByDay(times []time.Time) []models.DayCount {
	if len(times) == 0 {
		return []models.DayCount{}
	}

	counts := make(map[string]int64)
	first, last := times[0].UTC(), times[0].UTC()
	for _, ts := range times {
		ts = ts.UTC()
		counts[ts.Format(dayLayout)]++
		if ts.Before(first) {
			first = ts
		}
		if ts.After(last) {
			last = ts
		}
	}

	start := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]models.DayCount, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayLayout)
		out = append(out, models.DayCount{Date: key, Count: counts[key]})
	}
	return out
}
