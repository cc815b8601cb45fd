// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/danielhkuo/pollgram/cliparse"
	"github.com/danielhkuo/pollgram/handlers"
	"github.com/danielhkuo/pollgram/metrics"
	"github.com/danielhkuo/pollgram/middleware"
	"github.com/danielhkuo/pollgram/notify"
	"github.com/danielhkuo/pollgram/social"
	"github.com/danielhkuo/pollgram/store"
	"github.com/danielhkuo/pollgram/voting"
)

// Deps are the collaborators the HTTP surface is built from
type Deps struct {
	Config   cliparse.Config
	Store    store.Store
	Voting   *voting.Service
	Graph    *social.Graph
	Users    *social.Directory
	Notifier *notify.Notifier
	Metrics  *metrics.Metrics
}

// NewHandler is the server's root handler. CORS wraps the router so that
// preflight requests are answered before route matching.
func NewHandler(d Deps) http.Handler {
	return middleware.CORS(NewRouter(d))
}

func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.WithLogging, middleware.WithMetrics(d.Metrics))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollgram API v1"))
	}).Methods(http.MethodGet)

	healthHandler := handlers.NewHealthHandler(d.Store)
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate(d.Config.TokenSalt, d.Store.User()))

	pollHandler := handlers.NewPollHandler(d.Voting)
	votingHandler := handlers.NewVotingHandler(d.Voting)
	resultsHandler := handlers.NewResultsHandler(d.Voting)
	socialHandler := handlers.NewSocialHandler(d.Graph, d.Users)
	notificationHandler := handlers.NewNotificationHandler(d.Notifier)
	member := middleware.RequireMember

	// Polls
	api.HandleFunc("/polls", member(pollHandler.CreatePoll)).Methods(http.MethodPost)
	api.HandleFunc("/polls/{id}", pollHandler.GetPoll).Methods(http.MethodGet)
	api.HandleFunc("/polls/{id}", member(pollHandler.DeletePoll)).Methods(http.MethodDelete)
	api.HandleFunc("/users/{id}/polls", pollHandler.ListUserPolls).Methods(http.MethodGet)
	api.HandleFunc("/timeline", member(pollHandler.Timeline)).Methods(http.MethodGet)

	// Votes
	api.HandleFunc("/polls/{id}/vote", member(votingHandler.CastVote)).Methods(http.MethodPost)
	api.HandleFunc("/polls/{id}/vote", member(votingHandler.RetractVote)).Methods(http.MethodDelete)

	// Results
	api.HandleFunc("/polls/{id}/choices/{order:[0-9]+}/voters", resultsHandler.Voters).Methods(http.MethodGet)
	api.HandleFunc("/polls/{id}/charts/circle", member(resultsHandler.CircleChart)).Methods(http.MethodGet)
	api.HandleFunc("/polls/{id}/charts/bar", member(resultsHandler.BarChart)).Methods(http.MethodGet)

	// Profile and follow graph
	api.HandleFunc("/users/me", member(socialHandler.UpdateProfile)).Methods(http.MethodPatch)
	api.HandleFunc("/users/{id}/follow", member(socialHandler.Follow)).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/follow", member(socialHandler.Unfollow)).Methods(http.MethodDelete)
	api.HandleFunc("/users/me/blocked", member(socialHandler.BlockedUsers)).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/followers", member(socialHandler.Followers)).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/followings", member(socialHandler.Followings)).Methods(http.MethodGet)
	api.HandleFunc("/follow-requests", member(socialHandler.FollowRequests)).Methods(http.MethodGet)
	api.HandleFunc("/follow-requests/{id}", member(socialHandler.AcceptRequest)).Methods(http.MethodPost)
	api.HandleFunc("/follow-requests/{id}", member(socialHandler.RejectRequest)).Methods(http.MethodDelete)
	api.HandleFunc("/users/{id}/block", member(socialHandler.Block)).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/block", member(socialHandler.Unblock)).Methods(http.MethodDelete)

	// Notifications
	api.HandleFunc("/notifications", member(notificationHandler.List)).Methods(http.MethodGet)
	api.HandleFunc("/notifications/unread", member(notificationHandler.ListUnread)).Methods(http.MethodGet)
	api.HandleFunc("/notifications/count", member(notificationHandler.Count)).Methods(http.MethodGet)
	api.HandleFunc("/notifications/unread/count", member(notificationHandler.UnreadCount)).Methods(http.MethodGet)
	api.HandleFunc("/notifications/read", member(notificationHandler.MarkAllRead)).Methods(http.MethodPost)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", member(notificationHandler.MarkRead)).Methods(http.MethodPost)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", member(notificationHandler.MarkUnread)).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}
