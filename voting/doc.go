// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the poll voting and visibility engine.

# Poll Catalog

BuildPoll validates a definition (2-10 choices with unique orders, and
1 <= min <= max <= 10). CreatePoll stores it, GetPoll loads it and
DeletePoll removes it with its choices and votes. Only the creator or an
admin may delete.

# Vote Ledger

Each (poll, user) pair moves Unvoted -> Voted -> Unvoted. Cast checks, in
order:

	404 poll missing, or a block exists between voter and creator
	403 voter may not view the creator's content
	409 "already voted"
	400 "selected field is required" (no selected order matches a choice)
	422 "invalid number of votes"   (outside min/max)

Unknown orders are dropped unless the service runs with
WithStrictChoiceOrders, which fails them with "unknown choice order".
A unique index on (poll_id, user_id) turns a concurrent double cast into
409. Retract fails 403 "this poll is not vote retractable" and then 409
"not voted yet".

# Visibility Resolver

	can_see_results = creator or admin
	               or status == VISIBLE
	               or (status == VISIBLE_AFTER_VOTE and viewer has voted)

Read access to a poll requires a public creator, the creator, an admin or
an accepted follower. Listing voters additionally requires a public poll.
Retracting a vote hides VISIBLE_AFTER_VOTE results again.

# Tally Engine

Counts are per choice; AllVotesCount is their sum, so a multi-select voter
counts once per choice. When results are hidden, PollResponse carries null
vote_count and all_votes rather than zero. Charts are limited to the
creator and admins.

# Errors

Every failure is an *Error whose Kind maps to an HTTP status via
Kind.HTTPStatus. Storage failures become KindUnavailable (503).
*/
package voting
