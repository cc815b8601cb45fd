// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package social

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/danielhkuo/pollgram/event"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
	"github.com/danielhkuo/pollgram/voting"
)

// Graph is the follow and block graph between users.
type Graph struct {
	store store.Store
	bus   voting.Publisher
}

func NewGraph(st store.Store, bus voting.Publisher) *Graph {
	return &Graph{store: st, bus: bus}
}

func (g *Graph) publish(eventType event.EventType, data any) {
	if g.bus != nil {
		g.bus.PublishAsync(event.NewEvent(eventType, data))
	}
}

func (g *Graph) IsAcceptedFollower(ctx context.Context, followerID, followeeID string) (bool, error) {
	rel, err := g.store.Follow().Get(ctx, followerID, followeeID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !rel.Pending, nil
}

func (g *Graph) IsBlocked(ctx context.Context, a, b string) (bool, error) {
	return g.store.Follow().IsBlocked(ctx, a, b)
}

// target loads the other party of a relationship, hiding blocked users.
func (g *Graph) target(ctx context.Context, actor voting.Viewer, userID string) (*models.User, error) {
	if actor.Is(userID) {
		return nil, voting.NewError(voting.KindBadRequest, "you cannot do this to yourself")
	}
	user, err := g.store.User().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, voting.NewError(voting.KindNotFound, voting.MsgUserNotFound)
	}
	if err != nil {
		return nil, voting.Unavailable(err, "failed to load user")
	}
	return user, nil
}

// Follow follows a public user directly or sends a request to a private one.
func (g *Graph) Follow(ctx context.Context, follower voting.Viewer, followeeID string) (*models.FollowResponse, error) {
	followee, err := g.target(ctx, follower, followeeID)
	if err != nil {
		return nil, err
	}
	blocked, err := g.IsBlocked(ctx, follower.ID, followee.ID)
	if err != nil {
		return nil, voting.Unavailable(err, "failed to check block")
	}
	if blocked {
		return nil, voting.NewError(voting.KindNotFound, voting.MsgUserNotFound)
	}

	rel := &models.FollowRelationship{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
		Pending:    !followee.IsPublic,
	}
	err = g.store.Follow().Create(ctx, rel)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, voting.NewError(voting.KindConflict, "already following or requested")
	}
	if err != nil {
		return nil, voting.Unavailable(err, "failed to follow")
	}

	data := event.FollowEvent{FollowerID: follower.ID, FolloweeID: followee.ID}
	if rel.Pending {
		g.publish(event.FollowRequestedType, data)
	} else {
		g.publish(event.FollowedType, data)
	}
	slog.Info("follow created", "follower_id", follower.ID, "followee_id", followee.ID, "pending", rel.Pending)
	return &models.FollowResponse{FollowerID: rel.FollowerID, FolloweeID: rel.FolloweeID, Pending: rel.Pending}, nil
}

// Unfollow removes a follow or withdraws a pending request.
func (g *Graph) Unfollow(ctx context.Context, follower voting.Viewer, followeeID string) error {
	err := g.store.Follow().Delete(ctx, follower.ID, followeeID)
	if errors.Is(err, store.ErrNotFound) {
		return voting.NewError(voting.KindNotFound, "not following this user")
	}
	if err != nil {
		return voting.Unavailable(err, "failed to unfollow")
	}
	return nil
}

// AcceptRequest accepts followerID's pending request to follow followee.
func (g *Graph) AcceptRequest(ctx context.Context, followee voting.Viewer, followerID string) error {
	err := g.store.Follow().Accept(ctx, followerID, followee.ID)
	if errors.Is(err, store.ErrNotFound) {
		return voting.NewError(voting.KindNotFound, "follow request not found")
	}
	if err != nil {
		return voting.Unavailable(err, "failed to accept follow request")
	}
	g.publish(event.FollowAcceptedType, event.FollowEvent{FollowerID: followerID, FolloweeID: followee.ID})
	return nil
}

// RejectRequest drops a pending request. Accepted follows are untouched.
func (g *Graph) RejectRequest(ctx context.Context, followee voting.Viewer, followerID string) error {
	rel, err := g.store.Follow().Get(ctx, followerID, followee.ID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !rel.Pending) {
		return voting.NewError(voting.KindNotFound, "follow request not found")
	}
	if err != nil {
		return voting.Unavailable(err, "failed to load follow request")
	}
	if err := g.store.Follow().Delete(ctx, followerID, followee.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return voting.Unavailable(err, "failed to reject follow request")
	}
	return nil
}

// Block hides each user from the other and removes follows both ways.
func (g *Graph) Block(ctx context.Context, blocker voting.Viewer, blockedID string) error {
	blocked, err := g.target(ctx, blocker, blockedID)
	if err != nil {
		return err
	}
	err = g.store.Follow().Block(ctx, blocker.ID, blocked.ID)
	if errors.Is(err, store.ErrDuplicate) {
		return voting.NewError(voting.KindConflict, "already blocked")
	}
	if err != nil {
		return voting.Unavailable(err, "failed to block")
	}
	slog.Info("user blocked", "blocker_id", blocker.ID, "blocked_id", blocked.ID)
	return nil
}

func (g *Graph) Unblock(ctx context.Context, blocker voting.Viewer, blockedID string) error {
	err := g.store.Follow().Unblock(ctx, blocker.ID, blockedID)
	if errors.Is(err, store.ErrNotFound) {
		return voting.NewError(voting.KindNotFound, "user is not blocked")
	}
	if err != nil {
		return voting.Unavailable(err, "failed to unblock")
	}
	return nil
}

type userLister func(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error)

func userPage(ctx context.Context, list userLister, userID string, page, size, def, max int) (*models.Page[models.UserSummary], error) {
	page, size = store.NormalizePage(page, size, def, max)
	offset, limit := store.Pagination(page, size)
	users, total, err := list(ctx, userID, offset, limit)
	if err != nil {
		return nil, voting.Unavailable(err, "failed to list users")
	}
	results := make([]models.UserSummary, 0, len(users))
	for i := range users {
		results = append(results, users[i].Summary())
	}
	return &models.Page[models.UserSummary]{Count: total, Page: page, PageSize: size, Results: results}, nil
}

// visibleUser reports userID as missing when it does not exist or a block in
// either direction separates it from viewer.
func (g *Graph) visibleUser(ctx context.Context, viewer voting.Viewer, userID string) error {
	_, err := g.store.User().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return voting.NewError(voting.KindNotFound, voting.MsgUserNotFound)
	}
	if err != nil {
		return voting.Unavailable(err, "failed to load user")
	}
	if viewer.Is(userID) {
		return nil
	}
	blocked, err := g.IsBlocked(ctx, viewer.ID, userID)
	if err != nil {
		return voting.Unavailable(err, "failed to check block")
	}
	if blocked {
		return voting.NewError(voting.KindNotFound, voting.MsgUserNotFound)
	}
	return nil
}

// Followers lists the accepted followers of userID, newest first.
func (g *Graph) Followers(ctx context.Context, viewer voting.Viewer, userID string, page, size int) (*models.Page[models.UserSummary], error) {
	if err := g.visibleUser(ctx, viewer, userID); err != nil {
		return nil, err
	}
	return userPage(ctx, g.store.Follow().Followers, userID, page, size, models.FollowPageSize, models.FollowMaxPageSize)
}

// Followings lists the users userID follows, newest first.
func (g *Graph) Followings(ctx context.Context, viewer voting.Viewer, userID string, page, size int) (*models.Page[models.UserSummary], error) {
	if err := g.visibleUser(ctx, viewer, userID); err != nil {
		return nil, err
	}
	return userPage(ctx, g.store.Follow().Followings, userID, page, size, models.FollowPageSize, models.FollowMaxPageSize)
}

// FollowRequests lists users waiting for the viewer to accept them.
func (g *Graph) FollowRequests(ctx context.Context, viewer voting.Viewer, page, size int) (*models.Page[models.UserSummary], error) {
	return userPage(ctx, g.store.Follow().PendingRequests, viewer.ID, page, size, models.RequestPageSize, models.RequestMaxPageSize)
}

func (g *Graph) BlockedUsers(ctx context.Context, viewer voting.Viewer, page, size int) (*models.Page[models.UserSummary], error) {
	return userPage(ctx, g.store.Follow().BlockedBy, viewer.ID, page, size, models.BlockedPageSize, models.BlockedMaxPageSize)
}

// HandleVisibilityChanged accepts every pending request when a user turns
// public.
func (g *Graph) HandleVisibilityChanged(evt event.Event) {
	data, ok := evt.Data.(event.UserVisibilityChangedEvent)
	if !ok || !data.IsPublic {
		return
	}
	n, err := g.store.Follow().AcceptAllPending(context.Background(), data.UserID)
	if err != nil {
		slog.Error("failed to accept pending follow requests", "error", err, "user_id", data.UserID)
		return
	}
	slog.Info("accepted pending follow requests", "user_id", data.UserID, "count", n)
}

// Subscribe registers the graph's handlers on bus.
func (g *Graph) Subscribe(bus *event.Bus) {
	bus.SubscribeFunc(event.UserVisibilityChangedType, g.HandleVisibilityChanged)
}
