// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package social

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/danielhkuo/pollgram/event"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
	"github.com/danielhkuo/pollgram/voting"
)

const maxUsernameLen = 150

// Directory manages user profiles.
type Directory struct {
	store store.Store
	bus   voting.Publisher
}

func NewDirectory(st store.Store, bus voting.Publisher) *Directory {
	return &Directory{store: st, bus: bus}
}

type RegisterOptions struct {
	FirstName string
	LastName  string
	Superuser bool
	Private   bool
}

// Register creates a user. Usernames are unique.
func (d *Directory) Register(ctx context.Context, username string, opts RegisterOptions) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLen {
		return nil, voting.NewError(voting.KindValidation, "username must be 1-150 characters")
	}
	user := &models.User{
		ID:          uuid.NewString(),
		Username:    username,
		FirstName:   opts.FirstName,
		LastName:    opts.LastName,
		IsSuperuser: opts.Superuser,
		IsPublic:    !opts.Private,
	}
	err := d.store.User().Create(ctx, user)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, voting.NewError(voting.KindConflict, "username already taken")
	}
	if err != nil {
		return nil, voting.Unavailable(err, "failed to create user")
	}
	slog.Info("user registered", "user_id", user.ID, "username", username)
	return user, nil
}

func (d *Directory) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := d.store.User().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, voting.NewError(voting.KindNotFound, voting.MsgUserNotFound)
	}
	if err != nil {
		return nil, voting.Unavailable(err, "failed to load user")
	}
	return user, nil
}

// SetVisibility switches the user's profile between public and private and
// publishes UserVisibilityChanged when the value changes.
func (d *Directory) SetVisibility(ctx context.Context, viewer voting.Viewer, public bool) (*models.User, error) {
	user, err := d.Get(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	if user.IsPublic == public {
		return user, nil
	}

	err = d.store.User().SetPublic(ctx, user.ID, public)
	if errors.Is(err, store.ErrNotFound) {
		return nil, voting.NewError(voting.KindNotFound, voting.MsgUserNotFound)
	}
	if err != nil {
		return nil, voting.Unavailable(err, "failed to update user")
	}
	user.IsPublic = public

	if d.bus != nil {
		d.bus.PublishAsync(event.NewEvent(event.UserVisibilityChangedType, event.UserVisibilityChangedEvent{
			UserID:   user.ID,
			IsPublic: public,
		}))
	}
	slog.Info("user visibility changed", "user_id", user.ID, "is_public", public)
	return user, nil
}
