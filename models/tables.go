// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

type User struct {
	ID          string `gorm:"primaryKey;size:36"`
	Username    string `gorm:"uniqueIndex;size:150;not null"`
	FirstName   string `gorm:"size:150"`
	LastName    string `gorm:"size:150"`
	IsSuperuser bool   `gorm:"not null"`
	IsPublic    bool   `gorm:"not null"`
	CreatedAt   time.Time
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsPublic:  u.IsPublic,
	}
}

type Poll struct {
	ID                string           `gorm:"primaryKey;size:36"`
	CreatorID         string           `gorm:"size:36;not null;index"`
	Creator           User             `gorm:"foreignKey:CreatorID"`
	CreatedAt         time.Time        `gorm:"index"`
	Question          string           `gorm:"size:200;not null"`
	Description       string           `gorm:"type:text"`
	IsCommentable     bool             `gorm:"not null"`
	IsPublic          bool             `gorm:"not null"`
	VisibilityStatus  VisibilityStatus `gorm:"size:24;not null"`
	IsVoteRetractable bool             `gorm:"not null"`
	MinChoiceCanVote  int              `gorm:"not null"`
	MaxChoiceCanVote  int              `gorm:"not null"`
	AttachedHTTPLink  string           `gorm:"size:200"`
	ImageID           *string          `gorm:"size:64"`
	FileID            *string          `gorm:"size:64"`
	Choices           []Choice         `gorm:"foreignKey:PollID"`
}

// ChoiceByOrder returns the poll's choice with the given order, if loaded.
func (p *Poll) ChoiceByOrder(order int) (Choice, bool) {
	for _, c := range p.Choices {
		if c.Order == order {
			return c, true
		}
	}
	return Choice{}, false
}

// Order lives in column choice_order; "order" is reserved in SQL.
type Choice struct {
	ID      uint   `gorm:"primaryKey"`
	PollID  string `gorm:"size:36;not null;uniqueIndex:idx_choice_poll_order,priority:1"`
	Order   int    `gorm:"column:choice_order;not null;uniqueIndex:idx_choice_poll_order,priority:2"`
	Context string `gorm:"size:100;not null"`
}

// Vote is one ballot. The (poll_id, user_id) unique index enforces a
// single live vote per user per poll.
type Vote struct {
	ID        uint      `gorm:"primaryKey"`
	PollID    string    `gorm:"size:36;not null;uniqueIndex:idx_vote_poll_user,priority:1"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_vote_poll_user,priority:2;index"`
	CreatedAt time.Time `gorm:"index"`
}

// VoteChoice links a vote to one selected choice. Links belong to the vote.
type VoteChoice struct {
	VoteID   uint `gorm:"primaryKey"`
	ChoiceID uint `gorm:"primaryKey;index"`
}

type FollowRelationship struct {
	ID         uint   `gorm:"primaryKey"`
	FollowerID string `gorm:"size:36;not null;uniqueIndex:idx_follow_pair,priority:1"`
	FolloweeID string `gorm:"size:36;not null;uniqueIndex:idx_follow_pair,priority:2;index"`
	Pending    bool   `gorm:"not null"`
	CreatedAt  time.Time
}

type Block struct {
	ID        uint   `gorm:"primaryKey"`
	BlockerID string `gorm:"size:36;not null;uniqueIndex:idx_block_pair,priority:1"`
	BlockedID string `gorm:"size:36;not null;uniqueIndex:idx_block_pair,priority:2;index"`
	CreatedAt time.Time
}

type Notification struct {
	ID          uint      `gorm:"primaryKey"`
	RecipientID string    `gorm:"size:36;not null;index"`
	ActorID     string    `gorm:"size:36;not null"`
	Verb        string    `gorm:"size:32;not null"`
	PollID      *string   `gorm:"size:36"`
	Read        bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index"`
}

func (n *Notification) Response() NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Actor:     n.ActorID,
		Verb:      n.Verb,
		PollID:    n.PollID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// AllTables lists every persisted model in migration order.
func AllTables() []any {
	return []any{
		&User{},
		&Poll{},
		&Choice{},
		&Vote{},
		&VoteChoice{},
		&FollowRelationship{},
		&Block{},
		&Notification{},
	}
}
