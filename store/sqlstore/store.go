// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/danielhkuo/pollgram/store"
)

// SQLStore implements store.Store on top of gorm.
type SQLStore struct {
	db                *gorm.DB
	pollStore         PollStore
	voteStore         VoteStore
	userStore         UserStore
	followStore       FollowStore
	notificationStore NotificationStore
}

func New(db *gorm.DB) *SQLStore {
	return &SQLStore{
		db:                db,
		pollStore:         PollStore{db: db},
		voteStore:         VoteStore{db: db},
		userStore:         UserStore{db: db},
		followStore:       FollowStore{db: db},
		notificationStore: NotificationStore{db: db},
	}
}

func (s *SQLStore) Poll() store.PollStore                 { return &s.pollStore }
func (s *SQLStore) Vote() store.VoteStore                 { return &s.voteStore }
func (s *SQLStore) User() store.UserStore                 { return &s.userStore }
func (s *SQLStore) Follow() store.FollowStore             { return &s.followStore }
func (s *SQLStore) Notification() store.NotificationStore { return &s.notificationStore }

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get database handle")
	}
	return sqlDB.PingContext(ctx)
}

// isUniqueViolation recognizes duplicate-key failures from both drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
