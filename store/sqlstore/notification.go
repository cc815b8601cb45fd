// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
)

type NotificationStore struct {
	db *gorm.DB
}

func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(n).Error, "failed to create notification")
}

func (s *NotificationStore) inbox(ctx context.Context, recipientID string, unreadOnly bool) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Notification{}).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	return q
}

func (s *NotificationStore) list(ctx context.Context, recipientID string, unreadOnly bool, offset, limit int) ([]models.Notification, int64, error) {
	total, err := s.Count(ctx, recipientID, unreadOnly)
	if err != nil {
		return nil, 0, err
	}

	list := []models.Notification{}
	err = s.inbox(ctx, recipientID, unreadOnly).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list notifications")
	}
	return list, total, nil
}

func (s *NotificationStore) List(ctx context.Context, recipientID string, offset, limit int) ([]models.Notification, int64, error) {
	return s.list(ctx, recipientID, false, offset, limit)
}

func (s *NotificationStore) ListUnread(ctx context.Context, recipientID string, offset, limit int) ([]models.Notification, int64, error) {
	return s.list(ctx, recipientID, true, offset, limit)
}

func (s *NotificationStore) Count(ctx context.Context, recipientID string, unreadOnly bool) (int64, error) {
	var total int64
	if err := s.inbox(ctx, recipientID, unreadOnly).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count notifications")
	}
	return total, nil
}

func (s *NotificationStore) SetRead(ctx context.Context, recipientID string, id uint, read bool) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", read)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to update notification")
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, recipientID string) error {
	err := s.inbox(ctx, recipientID, true).Update("read", true).Error
	return errors.Wrap(err, "failed to mark notifications read")
}
