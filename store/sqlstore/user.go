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

type UserStore struct {
	db *gorm.DB
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	return errors.Wrap(err, "failed to create user")
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.first(ctx, "username = ?", username)
}

func (s *UserStore) first(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if notFound(err) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	return &user, nil
}

func (s *UserStore) SetPublic(ctx context.Context, id string, public bool) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("is_public", public)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to update user")
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
