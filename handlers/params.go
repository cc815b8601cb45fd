// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// pageParams reads ?page= and ?page_size=. Missing values are 0 and get
// the service defaults.
func pageParams(r *http.Request) (page, size int, ok bool) {
	q := r.URL.Query()
	page, ok = optionalInt(q.Get("page"))
	if !ok {
		return 0, 0, false
	}
	size, ok = optionalInt(q.Get("page_size"))
	return page, size, ok
}

func optionalInt(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
