// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pollgram/middleware"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/voting"
)

type VotingHandler struct {
	svc *voting.Service
}

func NewVotingHandler(svc *voting.Service) *VotingHandler {
	return &VotingHandler{svc: svc}
}

// CastVote handles POST /polls/{id}/vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.svc.Cast(r.Context(), pathVar(r, "id"), middleware.ViewerFromContext(r.Context()), req.Selected)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// RetractVote handles DELETE /polls/{id}/vote
func (h *VotingHandler) RetractVote(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Retract(r.Context(), pathVar(r, "id"), middleware.ViewerFromContext(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
