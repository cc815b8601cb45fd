// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/pollgram/middleware"
	"github.com/danielhkuo/pollgram/voting"
)

type ResultsHandler struct {
	svc *voting.Service
}

func NewResultsHandler(svc *voting.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// Voters handles GET /polls/{id}/choices/{order}/voters
func (h *ResultsHandler) Voters(w http.ResponseWriter, r *http.Request) {
	order, err := strconv.Atoi(pathVar(r, "order"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid choice order")
		return
	}
	page, size, ok := pageParams(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}

	resp, err := h.svc.VotersFor(r.Context(), pathVar(r, "id"), order, middleware.ViewerFromContext(r.Context()), page, size)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CircleChart handles GET /polls/{id}/charts/circle
func (h *ResultsHandler) CircleChart(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.CircleChart(r.Context(), pathVar(r, "id"), middleware.ViewerFromContext(r.Context()))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// BarChart handles GET /polls/{id}/charts/bar
func (h *ResultsHandler) BarChart(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.BarChartByDay(r.Context(), pathVar(r, "id"), middleware.ViewerFromContext(r.Context()))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
