// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"

	"github.com/danielhkuo/pollgram/models"
)

// FollowGraph answers relationship questions about users.
type FollowGraph interface {
	IsAcceptedFollower(ctx context.Context, followerID, followeeID string) (bool, error)
	IsBlocked(ctx context.Context, a, b string) (bool, error)
}

// CanSeeResults decides whether vote counts of poll are revealed to viewer.
// Retracting a vote sets hasVoted back to false and hides the counts again.
func CanSeeResults(poll *models.Poll, viewer Viewer, hasVoted bool) bool {
	switch {
	case viewer.OwnsOrAdministers(poll.CreatorID):
		return true
	case poll.VisibilityStatus == models.Visible:
		return true
	case poll.VisibilityStatus == models.VisibleAfterVote:
		return hasVoted
	}
	return false
}

// CanViewContent decides read access to content owned by owner.
func CanViewContent(owner *models.User, viewer Viewer, isAcceptedFollower bool) bool {
	return owner.IsPublic || viewer.OwnsOrAdministers(owner.ID) || isAcceptedFollower
}

// CanListVoters adds the public-poll requirement on top of result visibility.
func CanListVoters(poll *models.Poll, canSeeResults bool) bool {
	return canSeeResults && poll.IsPublic
}

// Resolver evaluates the visibility predicates against live state.
type Resolver struct {
	votes VoteChecker
	graph FollowGraph
}

// VoteChecker reports whether a user holds a vote on a poll.
type VoteChecker interface {
	Exists(ctx context.Context, pollID, userID string) (bool, error)
}

func NewResolver(votes VoteChecker, graph FollowGraph) *Resolver {
	return &Resolver{votes: votes, graph: graph}
}

// HasVoted is false for anonymous viewers without asking the store.
func (r *Resolver) HasVoted(ctx context.Context, pollID string, viewer Viewer) (bool, error) {
	if !viewer.HasRole(RoleMember) {
		return false, nil
	}
	ok, err := r.votes.Exists(ctx, pollID, viewer.ID)
	if err != nil {
		return false, Unavailable(err, "failed to check vote")
	}
	return ok, nil
}

// CanSeeResults resolves result visibility for viewer on poll.
func (r *Resolver) CanSeeResults(ctx context.Context, poll *models.Poll, viewer Viewer) (bool, error) {
	if viewer.OwnsOrAdministers(poll.CreatorID) || poll.VisibilityStatus == models.Visible {
		return true, nil
	}
	if poll.VisibilityStatus == models.Hidden {
		return false, nil
	}
	voted, err := r.HasVoted(ctx, poll.ID, viewer)
	if err != nil {
		return false, err
	}
	return CanSeeResults(poll, viewer, voted), nil
}

// CheckNotBlocked fails NotFound when a block exists between viewer and
// owner in either direction, so the blocked party cannot confirm it.
func (r *Resolver) CheckNotBlocked(ctx context.Context, ownerID string, viewer Viewer, notFoundMsg string) error {
	if viewer.Is(ownerID) || !viewer.HasRole(RoleMember) {
		return nil
	}
	blocked, err := r.graph.IsBlocked(ctx, viewer.ID, ownerID)
	if err != nil {
		return Unavailable(err, "failed to check block")
	}
	if blocked {
		return NewError(KindNotFound, notFoundMsg)
	}
	return nil
}

// CheckCanView fails Forbidden when viewer may not read owner's content.
func (r *Resolver) CheckCanView(ctx context.Context, owner *models.User, viewer Viewer) error {
	if CanViewContent(owner, viewer, false) {
		return nil
	}
	follower := false
	if viewer.HasRole(RoleMember) {
		var err error
		follower, err = r.graph.IsAcceptedFollower(ctx, viewer.ID, owner.ID)
		if err != nil {
			return Unavailable(err, "failed to check follow relationship")
		}
	}
	if !CanViewContent(owner, viewer, follower) {
		return NewError(KindForbidden, MsgPrivateAccount)
	}
	return nil
}
