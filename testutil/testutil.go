// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielhkuo/pollgram/auth"
	"github.com/danielhkuo/pollgram/cliparse"
	"github.com/danielhkuo/pollgram/db"
	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/store/sqlstore"
)

// SetupTestDB opens a private in-memory sqlite database with the full schema.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() {
		db.Close(conn)
	})
	return conn
}

// SetupTestStore returns a store backed by SetupTestDB
func SetupTestStore(t *testing.T) *sqlstore.SQLStore {
	t.Helper()
	return sqlstore.New(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	cfg := cliparse.Defaults()
	cfg.DatabaseURL = "file::memory:?cache=shared"
	cfg.TokenSalt = "test-token-salt"
	cfg.EventWorkers = 2
	return cfg
}

type UserOption func(*models.User)

func Superuser() UserOption { return func(u *models.User) { u.IsSuperuser = true } }
func Private() UserOption   { return func(u *models.User) { u.IsPublic = false } }

// CreateTestUser inserts a public, non-admin user unless options say otherwise
func CreateTestUser(t *testing.T, s *sqlstore.SQLStore, username string, opts ...UserOption) *models.User {
	t.Helper()

	user := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		IsPublic: true,
	}
	for _, opt := range opts {
		opt(user)
	}
	if err := s.User().Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

type PollOption func(*models.Poll)

func WithBounds(min, max int) PollOption {
	return func(p *models.Poll) {
		p.MinChoiceCanVote = min
		p.MaxChoiceCanVote = max
	}
}

func WithVisibility(v models.VisibilityStatus) PollOption {
	return func(p *models.Poll) { p.VisibilityStatus = v }
}

// WithChoices replaces the default choices with the given orders
func WithChoices(orders ...int) PollOption {
	return func(p *models.Poll) {
		p.Choices = nil
		for _, o := range orders {
			p.Choices = append(p.Choices, models.Choice{Order: o, Context: "choice"})
		}
	}
}

func NotRetractable() PollOption { return func(p *models.Poll) { p.IsVoteRetractable = false } }
func NotPublic() PollOption      { return func(p *models.Poll) { p.IsPublic = false } }

func CreatedAt(ts time.Time) PollOption {
	return func(p *models.Poll) { p.CreatedAt = ts }
}

// CreateTestPoll stores a poll with choices {1:"48", 2:"22"}, min=max=1,
// VISIBLE_AFTER_VOTE, public and retractable unless options say otherwise
func CreateTestPoll(t *testing.T, s *sqlstore.SQLStore, creator *models.User, opts ...PollOption) *models.Poll {
	t.Helper()

	poll := &models.Poll{
		ID:                uuid.NewString(),
		CreatorID:         creator.ID,
		Question:          "How old is the universe?",
		IsCommentable:     true,
		IsPublic:          true,
		VisibilityStatus:  models.VisibleAfterVote,
		IsVoteRetractable: true,
		MinChoiceCanVote:  1,
		MaxChoiceCanVote:  1,
		Choices: []models.Choice{
			{Order: 1, Context: "48"},
			{Order: 2, Context: "22"},
		},
	}
	for _, opt := range opts {
		opt(poll)
	}
	if err := s.Poll().Create(context.Background(), poll); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	poll.Creator = *creator
	return poll
}

// CreateTestVote records a vote selecting the given choice orders
func CreateTestVote(t *testing.T, s *sqlstore.SQLStore, poll *models.Poll, user *models.User, orders ...int) *models.Vote {
	t.Helper()

	var ids []uint
	for _, o := range orders {
		c, ok := poll.ChoiceByOrder(o)
		if !ok {
			t.Fatalf("Poll %s has no choice with order %d", poll.ID, o)
		}
		ids = append(ids, c.ID)
	}
	vote := &models.Vote{PollID: poll.ID, UserID: user.ID}
	if err := s.Vote().Insert(context.Background(), vote, ids); err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
	return vote
}

// AuthHeaders returns the Authorization header for user
func AuthHeaders(cfg cliparse.Config, user *models.User) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + auth.GenerateUserToken(user.ID, cfg.TokenSalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
