// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the persisted rows, request and response types for the API.

# Tables

gorm models, migrated by db.CreateSchema:

  - User: identity, is_superuser, is_public
  - Poll: question, bounds, visibility policy; owns its Choices
  - Choice: order (1-10, unique per poll) and context
  - Vote: one ballot per (poll, user), unique index idx_vote_poll_user
  - VoteChoice: selected-choice links owned by a Vote
  - FollowRelationship: follower -> followee, pending until accepted
  - Block: blocker -> blocked
  - Notification: recipient, actor, verb, optional poll

# Request Types

  - CreatePollRequest: question, description, choices, bounds, flags
  - CastVoteRequest: selected (choice orders)
  - UpdateProfileRequest: is_public

# Response Types

  - PollResponse: poll with gated vote_count / all_votes (null when hidden)
  - CastVoteResponse: selected
  - ChoiceCount, DayCount: chart series
  - Page[T]: count, page, page_size, results
  - ErrorResponse: status, error

# Visibility

	Visible          = "VISIBLE"
	VisibleAfterVote = "VISIBLE_AFTER_VOTE" (default)
	Hidden           = "HIDDEN"

ParseVisibilityStatus also accepts the short codes VI, VA and HI.
*/
package models
