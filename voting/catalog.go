// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/danielhkuo/pollgram/event"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store"
)

// Poll definition limits.
const (
	MinChoices       = 2
	MaxChoices       = 10
	MaxChoiceOrder   = 10
	MaxVoteBound     = 10
	MaxQuestionLen   = 200
	MaxContextLen    = 100
	MaxLinkLen       = 200
	MaxAttachmentLen = 64
)

func validationError(format string, args ...any) error {
	return NewError(KindValidation, fmt.Sprintf(format, args...))
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// BuildPoll validates req and returns the poll it describes. Nothing is
// persisted.
func BuildPoll(creatorID string, req models.CreatePollRequest) (*models.Poll, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, validationError("question is required")
	}
	if utf8.RuneCountInString(question) > MaxQuestionLen {
		return nil, validationError("question must be at most %d characters", MaxQuestionLen)
	}

	if len(req.Choices) < MinChoices || len(req.Choices) > MaxChoices {
		return nil, validationError("a poll needs between %d and %d choices", MinChoices, MaxChoices)
	}
	seen := make(map[int]bool, len(req.Choices))
	choices := make([]models.Choice, 0, len(req.Choices))
	for _, c := range req.Choices {
		if c.Order < 1 || c.Order > MaxChoiceOrder {
			return nil, validationError("choice order must be between 1 and %d", MaxChoiceOrder)
		}
		if seen[c.Order] {
			return nil, validationError("duplicate choice order %d", c.Order)
		}
		seen[c.Order] = true
		text := strings.TrimSpace(c.Context)
		if text == "" {
			return nil, validationError("choice %d needs a context", c.Order)
		}
		if utf8.RuneCountInString(text) > MaxContextLen {
			return nil, validationError("choice context must be at most %d characters", MaxContextLen)
		}
		choices = append(choices, models.Choice{Order: c.Order, Context: text})
	}

	minVotes := intOr(req.MinChoiceCanVote, 1)
	maxVotes := intOr(req.MaxChoiceCanVote, 1)
	if minVotes < 1 || maxVotes < 1 || minVotes > MaxVoteBound || maxVotes > MaxVoteBound {
		return nil, validationError("vote bounds must be between 1 and %d", MaxVoteBound)
	}
	if minVotes > maxVotes {
		return nil, validationError("min_choice_can_vote must not exceed max_choice_can_vote")
	}

	status, ok := models.ParseVisibilityStatus(req.VisibilityStatus)
	if !ok {
		return nil, validationError("unknown visibility_status %q", req.VisibilityStatus)
	}

	link := strings.TrimSpace(req.AttachedHTTPLink)
	if link != "" {
		if len(link) > MaxLinkLen {
			return nil, validationError("attached_http_link must be at most %d characters", MaxLinkLen)
		}
		u, err := url.Parse(link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, validationError("attached_http_link must be an http or https URL")
		}
	}
	for _, ref := range []*string{req.ImageID, req.FileID} {
		if ref != nil && len(*ref) > MaxAttachmentLen {
			return nil, validationError("attachment ids must be at most %d characters", MaxAttachmentLen)
		}
	}

	return &models.Poll{
		ID:                uuid.NewString(),
		CreatorID:         creatorID,
		Question:          question,
		Description:       strings.TrimSpace(req.Description),
		IsCommentable:     boolOr(req.IsCommentable, true),
		IsPublic:          boolOr(req.IsPublic, true),
		VisibilityStatus:  status,
		IsVoteRetractable: boolOr(req.IsVoteRetractable, true),
		MinChoiceCanVote:  minVotes,
		MaxChoiceCanVote:  maxVotes,
		AttachedHTTPLink:  link,
		ImageID:           req.ImageID,
		FileID:            req.FileID,
		Choices:           choices,
	}, nil
}

// CreatePoll validates and stores a new poll owned by creator.
func (s *Service) CreatePoll(ctx context.Context, creator Viewer, req models.CreatePollRequest) (*models.Poll, error) {
	if !creator.HasRole(RoleMember) {
		return nil, NewError(KindUnauthorized, MsgNotAuthenticated)
	}
	poll, err := BuildPoll(creator.ID, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Poll().Create(ctx, poll); err != nil {
		return nil, Unavailable(err, "failed to create poll")
	}

	// Reload to pick up the creator and timestamps
	stored, err := s.loadPoll(ctx, poll.ID)
	if err != nil {
		return nil, err
	}

	s.metrics.PollCreated()
	s.publish(event.PollCreatedType, event.PollCreatedEvent{PollID: poll.ID, CreatorID: creator.ID})
	slog.Info("poll created", "poll_id", poll.ID, "creator_id", creator.ID, "choices", len(poll.Choices))
	return stored, nil
}

// GetPoll returns the poll with its choices, without access checks.
func (s *Service) GetPoll(ctx context.Context, id string) (*models.Poll, error) {
	return s.loadPoll(ctx, id)
}

// DeletePoll removes the poll, its choices and its votes. Only the creator
// or an admin may delete.
func (s *Service) DeletePoll(ctx context.Context, id string, requester Viewer) error {
	poll, err := s.loadPoll(ctx, id)
	if err != nil {
		return err
	}
	if !requester.OwnsOrAdministers(poll.CreatorID) {
		return NewError(KindForbidden, MsgPermissionDenied)
	}

	err = s.store.Poll().Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return NewError(KindNotFound, MsgPollNotFound)
	}
	if err != nil {
		return Unavailable(err, "failed to delete poll")
	}

	s.metrics.PollDeleted()
	s.publish(event.PollDeletedType, event.PollDeletedEvent{PollID: id, RequesterID: requester.ID})
	slog.Info("poll deleted", "poll_id", id, "requester_id", requester.ID)
	return nil
}

// ViewPoll returns the poll as viewer may see it.
func (s *Service) ViewPoll(ctx context.Context, id string, viewer Viewer) (*models.PollResponse, error) {
	poll, err := s.loadVisiblePoll(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	return s.Describe(ctx, poll, viewer)
}

// Describe renders poll for viewer, withholding counts when results are
// not visible to them.
func (s *Service) Describe(ctx context.Context, poll *models.Poll, viewer Viewer) (*models.PollResponse, error) {
	voted := []int{}
	if viewer.HasRole(RoleMember) {
		var err error
		voted, err = s.UserVotedChoiceOrders(ctx, poll.ID, viewer.ID)
		if err != nil {
			return nil, err
		}
	}
	canSee := CanSeeResults(poll, viewer, len(voted) > 0)

	resp := &models.PollResponse{
		ID:                poll.ID,
		Creator:           poll.Creator.Summary(),
		CreatedAt:         poll.CreatedAt,
		Question:          poll.Question,
		Description:       poll.Description,
		Choices:           make([]models.ChoiceResponse, 0, len(poll.Choices)),
		MinChoiceCanVote:  poll.MinChoiceCanVote,
		MaxChoiceCanVote:  poll.MaxChoiceCanVote,
		VisibilityStatus:  poll.VisibilityStatus,
		IsVoteRetractable: poll.IsVoteRetractable,
		IsPublic:          poll.IsPublic,
		IsCommentable:     poll.IsCommentable,
		AttachedHTTPLink:  poll.AttachedHTTPLink,
		ImageID:           poll.ImageID,
		FileID:            poll.FileID,
		CanSeeResults:     canSee,
		VotedChoices:      voted,
	}

	var tally Tally
	if canSee {
		var err error
		tally, err = s.TallyPoll(ctx, poll)
		if err != nil {
			return nil, err
		}
		all := tally.AllVotesCount()
		resp.AllVotes = &all
	}
	for _, c := range poll.Choices {
		cr := models.ChoiceResponse{Order: c.Order, Context: c.Context}
		if canSee {
			n := tally.CountVotes(c.Order)
			cr.VoteCount = &n
		}
		resp.Choices = append(resp.Choices, cr)
	}
	return resp, nil
}

func (s *Service) describeAll(ctx context.Context, polls []models.Poll, viewer Viewer) ([]models.PollResponse, error) {
	out := make([]models.PollResponse, 0, len(polls))
	for i := range polls {
		resp, err := s.Describe(ctx, &polls[i], viewer)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// ListUserPolls lists a user's polls newest first, subject to view access
// on that user.
func (s *Service) ListUserPolls(ctx context.Context, userID string, viewer Viewer, page, size int) (*models.Page[models.PollResponse], error) {
	owner, err := s.store.User().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NewError(KindNotFound, MsgUserNotFound)
	}
	if err != nil {
		return nil, Unavailable(err, "failed to load user")
	}
	if err := s.resolver.CheckNotBlocked(ctx, owner.ID, viewer, MsgUserNotFound); err != nil {
		return nil, err
	}
	if err := s.resolver.CheckCanView(ctx, owner, viewer); err != nil {
		return nil, err
	}
	return s.listPolls(ctx, []string{owner.ID}, viewer, page, size)
}

// Timeline lists the viewer's own polls and those of users they follow,
// newest first.
func (s *Service) Timeline(ctx context.Context, viewer Viewer, page, size int) (*models.Page[models.PollResponse], error) {
	if !viewer.HasRole(RoleMember) {
		return nil, NewError(KindUnauthorized, MsgNotAuthenticated)
	}
	followees, err := s.store.Follow().Followees(ctx, viewer.ID)
	if err != nil {
		return nil, Unavailable(err, "failed to load followees")
	}
	return s.listPolls(ctx, append(followees, viewer.ID), viewer, page, size)
}

func (s *Service) listPolls(ctx context.Context, creatorIDs []string, viewer Viewer, page, size int) (*models.Page[models.PollResponse], error) {
	page, size = store.NormalizePage(page, size, models.PollPageSize, models.PollMaxPageSize)
	offset, limit := store.Pagination(page, size)
	polls, total, err := s.store.Poll().ListByCreators(ctx, creatorIDs, offset, limit)
	if err != nil {
		return nil, Unavailable(err, "failed to list polls")
	}
	results, err := s.describeAll(ctx, polls, viewer)
	if err != nil {
		return nil, err
	}
	return &models.Page[models.PollResponse]{Count: total, Page: page, PageSize: size, Results: results}, nil
}
