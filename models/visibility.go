// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "strings"

// VisibilityStatus controls when a poll's vote counts are revealed.
type VisibilityStatus string

const (
	Visible          VisibilityStatus = "VISIBLE"
	VisibleAfterVote VisibilityStatus = "VISIBLE_AFTER_VOTE"
	Hidden           VisibilityStatus = "HIDDEN"
)

// DefaultVisibility is used when a poll is created without a status.
const DefaultVisibility = VisibleAfterVote

// ParseVisibilityStatus accepts the long names and the short codes VI, VA
// and HI. An empty string yields DefaultVisibility.
func ParseVisibilityStatus(s string) (VisibilityStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return DefaultVisibility, true
	case string(Visible), "VI":
		return Visible, true
	case string(VisibleAfterVote), "VA":
		return VisibleAfterVote, true
	case string(Hidden), "HI":
		return Hidden, true
	}
	return "", false
}

func (v VisibilityStatus) Valid() bool {
	switch v {
	case Visible, VisibleAfterVote, Hidden:
		return true
	}
	return false
}
