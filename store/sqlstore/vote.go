// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
)

type VoteStore struct {
	db *gorm.DB
}

func (s *VoteStore) Insert(ctx context.Context, vote *models.Vote, choiceIDs []uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Vote{}).
			Where("poll_id = ? AND user_id = ?", vote.PollID, vote.UserID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return store.ErrDuplicate
		}

		// The unique index catches a concurrent insert that passed the check above
		if err := tx.Create(vote).Error; err != nil {
			return err
		}

		links := make([]models.VoteChoice, 0, len(choiceIDs))
		for _, id := range choiceIDs {
			links = append(links, models.VoteChoice{VoteID: vote.ID, ChoiceID: id})
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
	if errors.Is(err, store.ErrDuplicate) || isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	return errors.Wrap(err, "failed to insert vote")
}

func (s *VoteStore) Delete(ctx context.Context, pollID, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vote models.Vote
		err := tx.Where("poll_id = ? AND user_id = ?", pollID, userID).First(&vote).Error
		if notFound(err) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Where("vote_id = ?", vote.ID).Delete(&models.VoteChoice{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", vote.ID).Delete(&models.Vote{})
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
	return errors.Wrap(err, "failed to delete vote")
}

func (s *VoteStore) Exists(ctx context.Context, pollID, userID string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		Count(&n).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check vote")
	}
	return n > 0, nil
}

type choiceTotal struct {
	ChoiceID uint
	Total    int64
}

func (s *VoteStore) CountByChoice(ctx context.Context, pollID string) (map[uint]int64, error) {
	var rows []choiceTotal
	err := s.db.WithContext(ctx).Model(&models.VoteChoice{}).
		Select("vote_choices.choice_id AS choice_id, COUNT(*) AS total").
		Joins("JOIN choices ON choices.id = vote_choices.choice_id").
		Where("choices.poll_id = ?", pollID).
		Group("vote_choices.choice_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count votes")
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.ChoiceID] = r.Total
	}
	return counts, nil
}

func (s *VoteStore) ChoiceOrders(ctx context.Context, pollID, userID string) ([]int, error) {
	orders := []int{}
	err := s.db.WithContext(ctx).Table("vote_choices").
		Joins("JOIN votes ON votes.id = vote_choices.vote_id").
		Joins("JOIN choices ON choices.id = vote_choices.choice_id").
		Where("votes.poll_id = ? AND votes.user_id = ?", pollID, userID).
		Order("choices.choice_order ASC").
		Pluck("choices.choice_order", &orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load voted choices")
	}
	return orders, nil
}

func (s *VoteStore) Voters(ctx context.Context, choiceID uint, offset, limit int) ([]models.User, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.VoteChoice{}).
		Where("choice_id = ?", choiceID).
		Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count voters")
	}

	users := []models.User{}
	err = s.db.WithContext(ctx).Model(&models.User{}).
		Select("users.*").
		Joins("JOIN votes ON votes.user_id = users.id").
		Joins("JOIN vote_choices ON vote_choices.vote_id = votes.id").
		Where("vote_choices.choice_id = ?", choiceID).
		Order("votes.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list voters")
	}
	return users, total, nil
}

func (s *VoteStore) CreatedTimes(ctx context.Context, pollID string) ([]time.Time, error) {
	var times []time.Time
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("poll_id = ?", pollID).
		Order("id ASC").
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load vote times")
	}
	return times, nil
}
