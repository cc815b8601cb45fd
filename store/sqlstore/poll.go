// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
)

type PollStore struct {
	db *gorm.DB
}

func orderedChoices(db *gorm.DB) *gorm.DB {
	return db.Order("choice_order ASC")
}

func (s *PollStore) Create(ctx context.Context, poll *models.Poll) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(poll).Error; err != nil {
			return err
		}
		if len(poll.Choices) == 0 {
			return nil
		}
		for i := range poll.Choices {
			poll.Choices[i].PollID = poll.ID
		}
		return tx.Create(&poll.Choices).Error
	})
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	return errors.Wrap(err, "failed to create poll")
}

func (s *PollStore) Get(ctx context.Context, id string) (*models.Poll, error) {
	var poll models.Poll
	err := s.db.WithContext(ctx).
		Preload("Creator").
		Preload("Choices", orderedChoices).
		Where("id = ?", id).
		First(&poll).Error
	if notFound(err) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get poll")
	}
	return &poll, nil
}

func (s *PollStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var voteIDs []uint
		if err := tx.Model(&models.Vote{}).Where("poll_id = ?", id).Pluck("id", &voteIDs).Error; err != nil {
			return err
		}
		if len(voteIDs) > 0 {
			if err := tx.Where("vote_id IN ?", voteIDs).Delete(&models.VoteChoice{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("poll_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", id).Delete(&models.Choice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Poll{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return err
	}
	return errors.Wrap(err, "failed to delete poll")
}

func (s *PollStore) ListByCreators(ctx context.Context, creatorIDs []string, offset, limit int) ([]models.Poll, int64, error) {
	if len(creatorIDs) == 0 {
		return []models.Poll{}, 0, nil
	}

	var total int64
	err := s.db.WithContext(ctx).Model(&models.Poll{}).
		Where("creator_id IN ?", creatorIDs).
		Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count polls")
	}

	var polls []models.Poll
	err = s.db.WithContext(ctx).
		Preload("Creator").
		Preload("Choices", orderedChoices).
		Where("creator_id IN ?", creatorIDs).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&polls).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list polls")
	}
	return polls, total, nil
}
