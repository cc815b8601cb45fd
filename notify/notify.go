// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/danielhkuo/pollgram/event"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
	"github.com/danielhkuo/pollgram/voting"
)

// Notifier turns domain events into notifications for the affected user.
type Notifier struct {
	store store.NotificationStore
}

func New(st store.NotificationStore) *Notifier {
	return &Notifier{store: st}
}

// Subscribe registers the notifier's handlers on bus.
func (n *Notifier) Subscribe(bus *event.Bus) {
	bus.SubscribeFunc(event.VoteCastType, n.handleVoteCast)
	bus.SubscribeFunc(event.FollowRequestedType, n.followHandler(models.VerbFollowRequest))
	bus.SubscribeFunc(event.FollowedType, n.followHandler(models.VerbFollow))
	bus.SubscribeFunc(event.FollowAcceptedType, n.handleFollowAccepted)
}

func (n *Notifier) create(note *models.Notification) {
	if err := n.store.Create(context.Background(), note); err != nil {
		slog.Error("failed to create notification", "error", err, "verb", note.Verb, "recipient_id", note.RecipientID)
	}
}

func (n *Notifier) handleVoteCast(evt event.Event) {
	data, ok := evt.Data.(event.VoteCastEvent)
	if !ok || data.VoterID == data.CreatorID {
		return
	}
	pollID := data.PollID
	n.create(&models.Notification{
		RecipientID: data.CreatorID,
		ActorID:     data.VoterID,
		Verb:        models.VerbVoteOnYourPoll,
		PollID:      &pollID,
	})
}

// followHandler notifies the followee.
func (n *Notifier) followHandler(verb string) event.HandlerFunc {
	return func(evt event.Event) {
		data, ok := evt.Data.(event.FollowEvent)
		if !ok {
			return
		}
		n.create(&models.Notification{RecipientID: data.FolloweeID, ActorID: data.FollowerID, Verb: verb})
	}
}

// handleFollowAccepted notifies the follower whose request was accepted.
func (n *Notifier) handleFollowAccepted(evt event.Event) {
	data, ok := evt.Data.(event.FollowEvent)
	if !ok {
		return
	}
	n.create(&models.Notification{RecipientID: data.FollowerID, ActorID: data.FolloweeID, Verb: models.VerbFollowAccept})
}

func requireMember(viewer voting.Viewer) error {
	if !viewer.HasRole(voting.RoleMember) {
		return voting.NewError(voting.KindUnauthorized, voting.MsgNotAuthenticated)
	}
	return nil
}

type listFunc func(ctx context.Context, recipientID string, offset, limit int) ([]models.Notification, int64, error)

// List returns the viewer's notifications, newest first.
func (n *Notifier) List(ctx context.Context, viewer voting.Viewer, page, size int) (*models.Page[models.NotificationResponse], error) {
	return n.page(ctx, viewer, page, size, n.store.List)
}

// ListUnread is List narrowed to notifications not yet read.
func (n *Notifier) ListUnread(ctx context.Context, viewer voting.Viewer, page, size int) (*models.Page[models.NotificationResponse], error) {
	return n.page(ctx, viewer, page, size, n.store.ListUnread)
}

func (n *Notifier) page(ctx context.Context, viewer voting.Viewer, page, size int, list listFunc) (*models.Page[models.NotificationResponse], error) {
	if err := requireMember(viewer); err != nil {
		return nil, err
	}
	page, size = store.NormalizePage(page, size, models.NotificationPageSize, models.NotificationMaxPageSize)
	offset, limit := store.Pagination(page, size)
	notes, total, err := list(ctx, viewer.ID, offset, limit)
	if err != nil {
		return nil, voting.Unavailable(err, "failed to list notifications")
	}
	results := make([]models.NotificationResponse, 0, len(notes))
	for i := range notes {
		results = append(results, notes[i].Response())
	}
	return &models.Page[models.NotificationResponse]{Count: total, Page: page, PageSize: size, Results: results}, nil
}

func (n *Notifier) Count(ctx context.Context, viewer voting.Viewer, unreadOnly bool) (int64, error) {
	if err := requireMember(viewer); err != nil {
		return 0, err
	}
	total, err := n.store.Count(ctx, viewer.ID, unreadOnly)
	if err != nil {
		return 0, voting.Unavailable(err, "failed to count notifications")
	}
	return total, nil
}

// SetRead marks one of the viewer's notifications read or unread. Other
// users' notifications are reported as missing.
func (n *Notifier) SetRead(ctx context.Context, viewer voting.Viewer, id uint, read bool) error {
	if err := requireMember(viewer); err != nil {
		return err
	}
	err := n.store.SetRead(ctx, viewer.ID, id, read)
	if errors.Is(err, store.ErrNotFound) {
		return voting.NewError(voting.KindNotFound, "notification not found")
	}
	if err != nil {
		return voting.Unavailable(err, "failed to update notification")
	}
	return nil
}

func (n *Notifier) MarkAllRead(ctx context.Context, viewer voting.Viewer) error {
	if err := requireMember(viewer); err != nil {
		return err
	}
	if err := n.store.MarkAllRead(ctx, viewer.ID); err != nil {
		return voting.Unavailable(err, "failed to mark notifications read")
	}
	return nil
}
