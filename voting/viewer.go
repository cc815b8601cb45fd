// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "github.com/danielhkuo/pollgram/models"

// Role is a capability a viewer may hold.
type Role int

const (
	RoleMember Role = iota
	RoleAdmin
)

// Viewer is the authenticated caller as seen by the engine.
type Viewer struct {
	ID          string
	IsSuperuser bool
	IsPublic    bool
}

func ViewerFromUser(u *models.User) Viewer {
	return Viewer{ID: u.ID, IsSuperuser: u.IsSuperuser, IsPublic: u.IsPublic}
}

// HasRole reports whether the viewer holds the capability.
func (v Viewer) HasRole(r Role) bool {
	switch r {
	case RoleMember:
		return v.ID != ""
	case RoleAdmin:
		return v.IsSuperuser
	}
	return false
}

// Is reports whether the viewer is the given user.
func (v Viewer) Is(userID string) bool {
	return v.ID != "" && v.ID == userID
}

// OwnsOrAdministers reports creator-or-admin access to a user's content.
func (v Viewer) OwnsOrAdministers(userID string) bool {
	return v.Is(userID) || v.HasRole(RoleAdmin)
}
