// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pollgram/middleware"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/voting"
)

type PollHandler struct {
	svc *voting.Service
}

func NewPollHandler(svc *voting.Service) *PollHandler {
	return &PollHandler{svc: svc}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	viewer := middleware.ViewerFromContext(r.Context())
	poll, err := h.svc.CreatePoll(r.Context(), viewer, req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	resp, err := h.svc.Describe(r.Context(), poll, viewer)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ViewPoll(r.Context(), pathVar(r, "id"), middleware.ViewerFromContext(r.Context()))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePoll(r.Context(), pathVar(r, "id"), middleware.ViewerFromContext(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUserPolls handles GET /users/{id}/polls
func (h *PollHandler) ListUserPolls(w http.ResponseWriter, r *http.Request) {
	page, size, ok := pageParams(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}
	resp, err := h.svc.ListUserPolls(r.Context(), pathVar(r, "id"), middleware.ViewerFromContext(r.Context()), page, size)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Timeline handles GET /timeline
func (h *PollHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	page, size, ok := pageParams(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}
	resp, err := h.svc.Timeline(r.Context(), middleware.ViewerFromContext(r.Context()), page, size)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
