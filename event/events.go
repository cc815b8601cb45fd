// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package event

const (
	VoteCastType              EventType = "vote.cast"
	VoteRetractedType         EventType = "vote.retracted"
	PollCreatedType           EventType = "poll.created"
	PollDeletedType           EventType = "poll.deleted"
	UserVisibilityChangedType EventType = "user.visibility_changed"
	FollowRequestedType       EventType = "follow.requested"
	FollowedType              EventType = "follow.created"
	FollowAcceptedType        EventType = "follow.accepted"
)

type VoteCastEvent struct {
	PollID    string
	CreatorID string
	VoterID   string
	Selected  []int
}

type VoteRetractedEvent struct {
	PollID  string
	VoterID string
}

type PollCreatedEvent struct {
	PollID    string
	CreatorID string
}

type PollDeletedEvent struct {
	PollID      string
	RequesterID string
}

// UserVisibilityChangedEvent is published when a user switches between a
// public and a private profile.
type UserVisibilityChangedEvent struct {
	UserID   string
	IsPublic bool
}

// FollowEvent covers follow requests, direct follows and acceptances.
type FollowEvent struct {
	FollowerID string
	FolloweeID string
}
