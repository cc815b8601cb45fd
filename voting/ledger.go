// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"log/slog"
	"sort"

	"github.com/pkg/errors"

	"github.com/danielhkuo/pollgram/event"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
)

// Selection is a vote request resolved against a poll's choices.
type Selection struct {
	ChoiceIDs []uint
	Orders    []int
	Unknown   []int
}

// ResolveSelection maps requested orders onto the poll's choices. Repeated
// orders count once; orders the poll does not have end up in Unknown.
func ResolveSelection(poll *models.Poll, orders []int) Selection {
	var sel Selection
	seen := make(map[int]bool, len(orders))
	for _, o := range orders {
		if seen[o] {
			continue
		}
		seen[o] = true
		c, ok := poll.ChoiceByOrder(o)
		if !ok {
			sel.Unknown = append(sel.Unknown, o)
			continue
		}
		sel.ChoiceIDs = append(sel.ChoiceIDs, c.ID)
		sel.Orders = append(sel.Orders, c.Order)
	}
	sort.Ints(sel.Orders)
	return sel
}

func (s *Service) reject(err error) error {
	s.metrics.VoteRejected(KindOf(err).String())
	return err
}

// Cast records voter's ballot on the poll.
func (s *Service) Cast(ctx context.Context, pollID string, voter Viewer, selected []int) (*models.CastVoteResponse, error) {
	if !voter.HasRole(RoleMember) {
		return nil, s.reject(NewError(KindUnauthorized, MsgNotAuthenticated))
	}

	poll, err := s.loadVisiblePoll(ctx, pollID, voter)
	if err != nil {
		return nil, s.reject(err)
	}

	voted, err := s.resolver.HasVoted(ctx, poll.ID, voter)
	if err != nil {
		return nil, s.reject(err)
	}
	if voted {
		return nil, s.reject(NewError(KindConflict, MsgAlreadyVoted))
	}

	sel := ResolveSelection(poll, selected)
	if s.strict && len(sel.Unknown) > 0 {
		return nil, s.reject(NewError(KindUnknownChoice, MsgUnknownChoice))
	}
	if len(sel.ChoiceIDs) == 0 {
		return nil, s.reject(NewError(KindBadRequest, MsgSelectedRequired))
	}
	if len(sel.ChoiceIDs) < poll.MinChoiceCanVote || len(sel.ChoiceIDs) > poll.MaxChoiceCanVote {
		return nil, s.reject(NewError(KindUnprocessable, MsgInvalidVoteCount))
	}

	vote := &models.Vote{PollID: poll.ID, UserID: voter.ID}
	err = s.store.Vote().Insert(ctx, vote, sel.ChoiceIDs)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, s.reject(NewError(KindConflict, MsgAlreadyVoted))
	}
	if err != nil {
		return nil, s.reject(Unavailable(err, "failed to insert vote"))
	}

	s.metrics.VoteCast()
	s.publish(event.VoteCastType, event.VoteCastEvent{
		PollID:    poll.ID,
		CreatorID: poll.CreatorID,
		VoterID:   voter.ID,
		Selected:  sel.Orders,
	})
	slog.Info("vote cast", "poll_id", poll.ID, "user_id", voter.ID, "selected", sel.Orders)
	if len(sel.Unknown) > 0 {
		slog.Debug("dropped unknown choice orders", "poll_id", poll.ID, "orders", sel.Unknown)
	}

	return &models.CastVoteResponse{Selected: sel.Orders}, nil
}

// Retract deletes voter's ballot on the poll.
func (s *Service) Retract(ctx context.Context, pollID string, voter Viewer) error {
	if !voter.HasRole(RoleMember) {
		return NewError(KindUnauthorized, MsgNotAuthenticated)
	}

	poll, err := s.loadPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if err := s.resolver.CheckNotBlocked(ctx, poll.CreatorID, voter, MsgPollNotFound); err != nil {
		return err
	}
	if !poll.IsVoteRetractable {
		return NewError(KindForbidden, MsgNotRetractable)
	}

	err = s.store.Vote().Delete(ctx, poll.ID, voter.ID)
	if errors.Is(err, store.ErrNotFound) {
		return NewError(KindConflict, MsgNotVoted)
	}
	if err != nil {
		return Unavailable(err, "failed to delete vote")
	}

	s.metrics.VoteRetracted()
	s.publish(event.VoteRetractedType, event.VoteRetractedEvent{PollID: poll.ID, VoterID: voter.ID})
	slog.Info("vote retracted", "poll_id", poll.ID, "user_id", voter.ID)
	return nil
}
