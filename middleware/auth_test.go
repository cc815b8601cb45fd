// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/danielhkuo/pollgram/auth"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
	"github.com/danielhkuo/pollgram/store/mockstore"
	"github.com/danielhkuo/pollgram/voting"
)

const testSalt = "test-token-salt"

func TestAuthenticate(t *testing.T) {
	users := &mockstore.UserStore{}
	users.On("Get", mock.Anything, "u1").Return(&models.User{ID: "u1", IsSuperuser: true, IsPublic: true}, nil)
	users.On("Get", mock.Anything, "gone").Return(nil, store.ErrNotFound)
	users.On("Get", mock.Anything, "broken").Return(nil, errors.New("db down"))

	var seen voting.Viewer
	handler := Authenticate(testSalt, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ViewerFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantViewer voting.Viewer
	}{
		{"anonymous", "", http.StatusNoContent, voting.Viewer{}},
		{"valid token", "Bearer " + auth.GenerateUserToken("u1", testSalt), http.StatusNoContent, voting.Viewer{ID: "u1", IsSuperuser: true, IsPublic: true}},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, voting.Viewer{}},
		{"bad signature", "Bearer " + auth.GenerateUserToken("u1", "other-salt"), http.StatusUnauthorized, voting.Viewer{}},
		{"unknown user", "Bearer " + auth.GenerateUserToken("gone", testSalt), http.StatusUnauthorized, voting.Viewer{}},
		{"store failure", "Bearer " + auth.GenerateUserToken("broken", testSalt), http.StatusServiceUnavailable, voting.Viewer{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seen = voting.Viewer{}
			req := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantViewer, seen)
		})
	}
}

func TestRequireMember(t *testing.T) {
	handler := RequireMember(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithViewer(req.Context(), voting.Viewer{ID: "u1"}))
	w = httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
