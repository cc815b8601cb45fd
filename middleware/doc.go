// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

Both are mux middleware:

	r.Use(middleware.WithLogging, middleware.WithMetrics(m))

WithMetrics labels requests by route template, not raw path.

# Authentication

	api.Use(middleware.Authenticate(cfg.TokenSalt, st.User()))
	api.HandleFunc("/polls", middleware.RequireMember(h.CreatePoll))

Requests without an Authorization header continue as anonymous viewers.
A malformed or forged bearer token is a 401.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.WriteError(w, err) // maps voting.Error kinds to status codes

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
