// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pollgram/middleware"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/social"
)

type SocialHandler struct {
	graph *social.Graph
	users *social.Directory
}

func NewSocialHandler(graph *social.Graph, users *social.Directory) *SocialHandler {
	return &SocialHandler{graph: graph, users: users}
}

// UpdateProfile handles PATCH /users/me
func (h *SocialHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.IsPublic == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "is_public is required")
		return
	}

	user, err := h.users.SetVisibility(r.Context(), middleware.ViewerFromContext(r.Context()), *req.IsPublic)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user.Summary())
}

// Follow handles POST /users/{id}/follow
func (h *SocialHandler) Follow(w http.ResponseWriter, r *http.Request) {
	resp, err := h.graph.Follow(r.Context(), middleware.ViewerFromContext(r.Context()), pathVar(r, "id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// Unfollow handles DELETE /users/{id}/follow
func (h *SocialHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.graph.Unfollow(r.Context(), middleware.ViewerFromContext(r.Context()), pathVar(r, "id")))
}

// AcceptRequest handles POST /follow-requests/{id}, where id is the follower
func (h *SocialHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.graph.AcceptRequest(r.Context(), middleware.ViewerFromContext(r.Context()), pathVar(r, "id")))
}

// RejectRequest handles DELETE /follow-requests/{id}
func (h *SocialHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.graph.RejectRequest(r.Context(), middleware.ViewerFromContext(r.Context()), pathVar(r, "id")))
}

// Block handles POST /users/{id}/block
func (h *SocialHandler) Block(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.graph.Block(r.Context(), middleware.ViewerFromContext(r.Context()), pathVar(r, "id")))
}

// Unblock handles DELETE /users/{id}/block
func (h *SocialHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.graph.Unblock(r.Context(), middleware.ViewerFromContext(r.Context()), pathVar(r, "id")))
}

type userLister func(r *http.Request, page, size int) (*models.Page[models.UserSummary], error)

func (h *SocialHandler) listUsers(w http.ResponseWriter, r *http.Request, list userLister) {
	page, size, ok := pageParams(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}
	resp, err := list(r, page, size)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Followers handles GET /users/{id}/followers
func (h *SocialHandler) Followers(w http.ResponseWriter, r *http.Request) {
	h.listUsers(w, r, func(r *http.Request, page, size int) (*models.Page[models.UserSummary], error) {
		return h.graph.Followers(r.Context(), middleware.ViewerFromContext(r.Context()), pathVar(r, "id"), page, size)
	})
}

// Followings handles GET /users/{id}/followings
func (h *SocialHandler) Followings(w http.ResponseWriter, r *http.Request) {
	h.listUsers(w, r, func(r *http.Request, page, size int) (*models.Page[models.UserSummary], error) {
		return h.graph.Followings(r.Context(), middleware.ViewerFromContext(r.Context()), pathVar(r, "id"), page, size)
	})
}

// FollowRequests handles GET /follow-requests
func (h *SocialHandler) FollowRequests(w http.ResponseWriter, r *http.Request) {
	h.listUsers(w, r, func(r *http.Request, page, size int) (*models.Page[models.UserSummary], error) {
		return h.graph.FollowRequests(r.Context(), middleware.ViewerFromContext(r.Context()), page, size)
	})
}

// BlockedUsers handles GET /users/me/blocked
func (h *SocialHandler) BlockedUsers(w http.ResponseWriter, r *http.Request) {
	h.listUsers(w, r, func(r *http.Request, page, size int) (*models.Page[models.UserSummary], error) {
		return h.graph.BlockedUsers(r.Context(), middleware.ViewerFromContext(r.Context()), page, size)
	})
}

func (h *SocialHandler) noContent(w http.ResponseWriter, err error) {
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
