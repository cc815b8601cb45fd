// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/danielhkuo/pollgram/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store groups the persistence interfaces.
type Store interface {
	Poll() PollStore
	Vote() VoteStore
	User() UserStore
	Follow() FollowStore
	Notification() NotificationStore
	Ping(ctx context.Context) error
}

// PollStore persists polls together with their choices.
type PollStore interface {
	// Create inserts the poll and its choices in one transaction.
	Create(ctx context.Context, poll *models.Poll) error
	// Get loads the poll with its creator and choices ordered by order.
	Get(ctx context.Context, id string) (*models.Poll, error)
	// Delete removes the poll, its choices, votes and vote links.
	Delete(ctx context.Context, id string) error
	// ListByCreators returns polls newest first.
	ListByCreators(ctx context.Context, creatorIDs []string, offset, limit int) ([]models.Poll, int64, error)
}

type VoteStore interface {
	// Insert writes the vote and its choice links atomically. It returns
	// ErrDuplicate if the user already holds a vote on the poll.
	Insert(ctx context.Context, vote *models.Vote, choiceIDs []uint) error
	// Delete removes the user's vote and its links. It returns ErrNotFound
	// if there is nothing to delete.
	Delete(ctx context.Context, pollID, userID string) error
	Exists(ctx context.Context, pollID, userID string) (bool, error)
	// CountByChoice maps choice id to the number of votes selecting it.
	CountByChoice(ctx context.Context, pollID string) (map[uint]int64, error)
	ChoiceOrders(ctx context.Context, pollID, userID string) ([]int, error)
	// Voters returns the users whose vote selects the choice, most recent first.
	Voters(ctx context.Context, choiceID uint, offset, limit int) ([]models.User, int64, error)
	CreatedTimes(ctx context.Context, pollID string) ([]time.Time, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	SetPublic(ctx context.Context, id string, public bool) error
}

type FollowStore interface {
	Get(ctx context.Context, followerID, followeeID string) (*models.FollowRelationship, error)
	Create(ctx context.Context, rel *models.FollowRelationship) error
	// Accept marks a pending request accepted. ErrNotFound if none is pending.
	Accept(ctx context.Context, followerID, followeeID string) error
	Delete(ctx context.Context, followerID, followeeID string) error
	AcceptAllPending(ctx context.Context, followeeID string) (int64, error)
	// Followees lists ids the user follows with an accepted relationship.
	Followees(ctx context.Context, followerID string) ([]string, error)
	// Block records the block and drops follow edges in both directions.
	Block(ctx context.Context, blockerID, blockedID string) error
	Unblock(ctx context.Context, blockerID, blockedID string) error
	// IsBlocked reports a block in either direction.
	IsBlocked(ctx context.Context, a, b string) (bool, error)

	// Followers lists users with an accepted follow of userID, newest first.
	Followers(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error)
	// Followings lists users userID follows with an accepted relationship.
	Followings(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error)
	// PendingRequests lists users waiting for userID to accept them.
	PendingRequests(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error)
	// BlockedBy lists users blockerID has blocked.
	BlockedBy(ctx context.Context, blockerID string, offset, limit int) ([]models.User, int64, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, recipientID string, offset, limit int) ([]models.Notification, int64, error)
	ListUnread(ctx context.Context, recipientID string, offset, limit int) ([]models.Notification, int64, error)
	Count(ctx context.Context, recipientID string, unreadOnly bool) (int64, error)
	// SetRead flags one of the recipient's notifications. ErrNotFound if
	// the id does not belong to them.
	SetRead(ctx context.Context, recipientID string, id uint, read bool) error
	MarkAllRead(ctx context.Context, recipientID string) error
}

// NormalizePage clamps page to at least 1 and size to [1, max], using def
// when size is unset.
func NormalizePage(page, size, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = def
	}
	if size > max {
		size = max
	}
	return page, size
}

// Pagination converts a 1-based page into offset and limit.
func Pagination(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize, pageSize
}
