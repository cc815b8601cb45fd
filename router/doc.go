// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pollgram API.

# Route Registration

NewHandler builds the gorilla/mux router from its dependencies and wraps
it in CORS:

	handler := router.NewHandler(router.Deps{Config: cfg, Store: st, Voting: svc, ...})

# Endpoints

Service:

	GET /health  - Store liveness
	GET /metrics - Prometheus metrics

Polls (under /api/v1):

	POST   /polls                          - Create poll (member)
	GET    /polls/{id}                     - Poll with gated counts
	DELETE /polls/{id}                     - Delete (creator or admin)
	GET    /users/{id}/polls               - A user's polls
	GET    /timeline                       - Own and followed polls (member)

Votes and results:

	POST   /polls/{id}/vote                - Cast (member)
	DELETE /polls/{id}/vote                - Retract (member)
	GET    /polls/{id}/choices/{order}/voters
	GET    /polls/{id}/charts/circle       - Creator or admin
	GET    /polls/{id}/charts/bar          - Creator or admin

Social:

	PATCH  /users/me                       - Set is_public
	POST   /users/{id}/follow, DELETE      - Follow, unfollow
	POST   /follow-requests/{id}, DELETE   - Accept, reject
	POST   /users/{id}/block, DELETE       - Block, unblock
	GET    /users/me/blocked               - Users the caller blocked
	GET    /users/{id}/followers           - Accepted followers
	GET    /users/{id}/followings          - Accepted followings
	GET    /follow-requests                - Pending requests to the caller

Notifications (member):

	GET    /notifications                  - Inbox, newest first
	GET    /notifications/unread
	GET    /notifications/count            - {"count": n}
	GET    /notifications/unread/count
	POST   /notifications/read             - Mark all read
	POST   /notifications/{id}/read        - Mark one read
	DELETE /notifications/{id}/read        - Mark one unread

Every /api/v1 request passes through middleware.Authenticate; routes
marked member are additionally wrapped in middleware.RequireMember.
*/
package router
