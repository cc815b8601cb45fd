// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/danielhkuo/pollgram/auth"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
	"github.com/danielhkuo/pollgram/voting"
)

type contextKey int

const viewerKey contextKey = iota

// UserGetter loads the user named by a bearer token
type UserGetter interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

// Authenticate resolves the bearer token into a voting.Viewer stored on the
// request context. Requests without an Authorization header pass through
// as anonymous; a bad token or unknown user is rejected with 401.
func Authenticate(salt string, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := auth.BearerToken(header)
			if !ok {
				ErrorResponse(w, http.StatusUnauthorized, voting.MsgInvalidCredential)
				return
			}
			userID, err := auth.ParseUserToken(token, salt)
			if err != nil {
				ErrorResponse(w, http.StatusUnauthorized, voting.MsgInvalidCredential)
				return
			}

			user, err := users.Get(r.Context(), userID)
			if errors.Is(err, store.ErrNotFound) {
				ErrorResponse(w, http.StatusUnauthorized, voting.MsgInvalidCredential)
				return
			}
			if err != nil {
				WriteError(w, voting.Unavailable(err, "failed to load user"))
				return
			}

			ctx := WithViewer(r.Context(), voting.ViewerFromUser(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireMember rejects anonymous requests with 401
func RequireMember(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ViewerFromContext(r.Context()).HasRole(voting.RoleMember) {
			ErrorResponse(w, http.StatusUnauthorized, voting.MsgNotAuthenticated)
			return
		}
		next(w, r)
	}
}

func WithViewer(ctx context.Context, v voting.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// ViewerFromContext returns the authenticated viewer, or the anonymous
// zero Viewer.
func ViewerFromContext(ctx context.Context) voting.Viewer {
	v, _ := ctx.Value(viewerKey).(voting.Viewer)
	return v
}
