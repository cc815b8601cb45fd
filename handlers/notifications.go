// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielhkuo/pollgram/middleware"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/notify"
	"github.com/danielhkuo/pollgram/voting"
)

type NotificationHandler struct {
	notifier *notify.Notifier
}

func NewNotificationHandler(n *notify.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: n}
}

type notificationLister func(ctx context.Context, viewer voting.Viewer, page, size int) (*models.Page[models.NotificationResponse], error)

func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request, list notificationLister) {
	page, size, ok := pageParams(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}
	resp, err := list(r.Context(), middleware.ViewerFromContext(r.Context()), page, size)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// List handles GET /notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.notifier.List)
}

// ListUnread handles GET /notifications/unread
func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.notifier.ListUnread)
}

// Count handles GET /notifications/count
func (h *NotificationHandler) Count(w http.ResponseWriter, r *http.Request) {
	h.count(w, r, false)
}

// UnreadCount handles GET /notifications/unread/count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	h.count(w, r, true)
}

func (h *NotificationHandler) count(w http.ResponseWriter, r *http.Request, unreadOnly bool) {
	n, err := h.notifier.Count(r.Context(), middleware.ViewerFromContext(r.Context()), unreadOnly)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.CountResponse{Count: n})
}

// MarkAllRead handles POST /notifications/read
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifier.MarkAllRead(r.Context(), middleware.ViewerFromContext(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkRead handles POST /notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.setRead(w, r, true)
}

// MarkUnread handles DELETE /notifications/{id}/read
func (h *NotificationHandler) MarkUnread(w http.ResponseWriter, r *http.Request) {
	h.setRead(w, r, false)
}

func (h *NotificationHandler) setRead(w http.ResponseWriter, r *http.Request, read bool) {
	id, err := strconv.ParseUint(pathVar(r, "id"), 10, 0)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := h.notifier.SetRead(r.Context(), middleware.ViewerFromContext(r.Context()), uint(id), read); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
