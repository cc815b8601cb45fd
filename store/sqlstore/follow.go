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

type FollowStore struct {
	db *gorm.DB
}

func (s *FollowStore) Get(ctx context.Context, followerID, followeeID string) (*models.FollowRelationship, error) {
	var rel models.FollowRelationship
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&rel).Error
	if notFound(err) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get follow relationship")
	}
	return &rel, nil
}

func (s *FollowStore) Create(ctx context.Context, rel *models.FollowRelationship) error {
	err := s.db.WithContext(ctx).Create(rel).Error
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	return errors.Wrap(err, "failed to create follow relationship")
}

func (s *FollowStore) Accept(ctx context.Context, followerID, followeeID string) error {
	res := s.db.WithContext(ctx).Model(&models.FollowRelationship{}).
		Where("follower_id = ? AND followee_id = ? AND pending = ?", followerID, followeeID, true).
		Update("pending", false)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to accept follow request")
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *FollowStore) Delete(ctx context.Context, followerID, followeeID string) error {
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.FollowRelationship{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete follow relationship")
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *FollowStore) AcceptAllPending(ctx context.Context, followeeID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.FollowRelationship{}).
		Where("followee_id = ? AND pending = ?", followeeID, true).
		Update("pending", false)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "failed to accept pending requests")
	}
	return res.RowsAffected, nil
}

func (s *FollowStore) Followees(ctx context.Context, followerID string) ([]string, error) {
	ids := []string{}
	err := s.db.WithContext(ctx).Model(&models.FollowRelationship{}).
		Where("follower_id = ? AND pending = ?", followerID, false).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list followees")
	}
	return ids, nil
}

func (s *FollowStore) Block(ctx context.Context, blockerID, blockedID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Block{BlockerID: blockerID, BlockedID: blockedID}).Error; err != nil {
			return err
		}
		return tx.Where(
			"(follower_id = ? AND followee_id = ?) OR (follower_id = ? AND followee_id = ?)",
			blockerID, blockedID, blockedID, blockerID,
		).Delete(&models.FollowRelationship{}).Error
	})
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	return errors.Wrap(err, "failed to block user")
}

func (s *FollowStore) Unblock(ctx context.Context, blockerID, blockedID string) error {
	res := s.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to unblock user")
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *FollowStore) IsBlocked(ctx context.Context, a, b string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&n).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check block")
	}
	return n > 0, nil
}

// listUsers pages over users narrowed by scope, which joins the relationship
// table and filters it.
func (s *FollowStore) listUsers(ctx context.Context, scope func(*gorm.DB) *gorm.DB, order string, offset, limit int) ([]models.User, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Scopes(scope).Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	users := []models.User{}
	err = s.db.WithContext(ctx).Model(&models.User{}).Scopes(scope).
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}
	return users, total, nil
}

func followEdges(userColumn, filterColumn, userID string, pending bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN follow_relationships ON follow_relationships."+userColumn+" = users.id").
			Where("follow_relationships."+filterColumn+" = ? AND follow_relationships.pending = ?", userID, pending)
	}
}

func (s *FollowStore) Followers(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error) {
	return s.listUsers(ctx, followEdges("follower_id", "followee_id", userID, false), "follow_relationships.id DESC", offset, limit)
}

func (s *FollowStore) Followings(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error) {
	return s.listUsers(ctx, followEdges("followee_id", "follower_id", userID, false), "follow_relationships.id DESC", offset, limit)
}

func (s *FollowStore) PendingRequests(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error) {
	return s.listUsers(ctx, followEdges("follower_id", "followee_id", userID, true), "follow_relationships.id DESC", offset, limit)
}

func (s *FollowStore) BlockedBy(ctx context.Context, blockerID string, offset, limit int) ([]models.User, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN blocks ON blocks.blocked_id = users.id").Where("blocks.blocker_id = ?", blockerID)
	}
	return s.listUsers(ctx, scope, "blocks.id DESC", offset, limit)
}
