// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pollgram API.

# Handler Types

Each handler is a thin struct around the service it exposes:

  - PollHandler: Create, read, delete and list polls
  - VotingHandler: Cast and retract votes
  - ResultsHandler: Voter lists and creator charts
  - SocialHandler: Profile visibility, follows, blocks and their listings
  - NotificationHandler: Notification inbox, counts and read state
  - HealthHandler: Store liveness

Handlers read the caller from the request context (see
middleware.ViewerFromContext) and translate service errors with
middleware.WriteError, so every failure renders as

	{"status": "<message>", "error": "<HTTP status text>"}

# Voting

	POST   /polls/{id}/vote  → CastVote    201 {"selected": [...]}
	DELETE /polls/{id}/vote  → RetractVote 204

Cast failures, in the order they are checked: 401 anonymous, 404 missing
poll or blocked, 403 private account, 409 already voted, 400 no valid
selection, 422 outside the poll's min/max.

# Pagination

List endpoints take ?page= and ?page_size=. Missing values use the
service defaults; negative or non-numeric values are a 400.
*/
package handlers
