// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/testutil"
)

func TestCreatePoll(t *testing.T) {
	app := testutil.SetupTestApp(t)
	alice := testutil.CreateTestUser(t, app.Store, "alice")
	headers := testutil.AuthHeaders(app.Config, alice)

	tests := []struct {
		name           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
	}{
		{
			name: "valid poll",
			body: models.CreatePollRequest{
				Question: "Tabs or spaces?",
				Choices:  []models.ChoiceRequest{{Order: 1, Context: "tabs"}, {Order: 2, Context: "spaces"}},
			},
			headers:        headers,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing question",
			body:           models.CreatePollRequest{Choices: []models.ChoiceRequest{{Order: 1, Context: "a"}, {Order: 2, Context: "b"}}},
			headers:        headers,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bounds out of order",
			body: map[string]interface{}{
				"question":            "q",
				"choices":             []map[string]interface{}{{"order": 1, "context": "a"}, {"order": 2, "context": "b"}},
				"min_choice_can_vote": 2,
				"max_choice_can_vote": 1,
			},
			headers:        headers,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           "not json",
			headers:        headers,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "anonymous",
			body:           models.CreatePollRequest{Question: "q"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.Do(testutil.MakeRequest("POST", "/api/v1/polls", tt.body, tt.headers))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestCreatePoll_Response(t *testing.T) {
	app := testutil.SetupTestApp(t)
	alice := testutil.CreateTestUser(t, app.Store, "alice")

	req := testutil.MakeRequest("POST", "/api/v1/polls", models.CreatePollRequest{
		Question:         "Best season?",
		Choices:          []models.ChoiceRequest{{Order: 2, Context: "summer"}, {Order: 1, Context: "winter"}},
		VisibilityStatus: "VI",
	}, testutil.AuthHeaders(app.Config, alice))
	w := app.Do(req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.PollResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ID == "" {
		t.Error("Expected poll id")
	}
	if resp.Creator.Username != "alice" {
		t.Errorf("Expected creator alice, got %s", resp.Creator.Username)
	}
	if resp.VisibilityStatus != models.Visible {
		t.Errorf("Expected VISIBLE, got %s", resp.VisibilityStatus)
	}
	if len(resp.Choices) != 2 || resp.Choices[0].Order != 1 {
		t.Errorf("Expected choices ordered by order, got %+v", resp.Choices)
	}
	if resp.AllVotes == nil || *resp.AllVotes != 0 {
		t.Error("Expected all_votes 0 for the creator")
	}
}

func TestGetPoll(t *testing.T) {
	app := testutil.SetupTestApp(t)
	creator := testutil.CreateTestUser(t, app.Store, "creator")
	locked := testutil.CreateTestUser(t, app.Store, "locked", testutil.Private())
	reader := testutil.CreateTestUser(t, app.Store, "reader")
	poll := testutil.CreateTestPoll(t, app.Store, creator, testutil.WithVisibility(models.Hidden))
	private := testutil.CreateTestPoll(t, app.Store, locked)
	testutil.CreateTestVote(t, app.Store, poll, reader, 1)

	t.Run("hidden counts are null for voters", func(t *testing.T) {
		w := app.Do(testutil.MakeRequest("GET", "/api/v1/polls/"+poll.ID, nil, testutil.AuthHeaders(app.Config, reader)))
		testutil.AssertStatus(t, w, http.StatusOK)

		var raw map[string]interface{}
		testutil.AssertJSON(t, w, &raw)
		if raw["all_votes"] != nil {
			t.Errorf("Expected null all_votes, got %v", raw["all_votes"])
		}
		for _, c := range raw["choices"].([]interface{}) {
			if v := c.(map[string]interface{})["vote_count"]; v != nil {
				t.Errorf("Expected null vote_count, got %v", v)
			}
		}
	})

	t.Run("creator sees counts", func(t *testing.T) {
		w := app.Do(testutil.MakeRequest("GET", "/api/v1/polls/"+poll.ID, nil, testutil.AuthHeaders(app.Config, creator)))
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.PollResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Choices[0].VoteCount == nil || *resp.Choices[0].VoteCount != 1 {
			t.Errorf("Expected choice 1 count 1, got %+v", resp.Choices[0])
		}
	})

	t.Run("private account", func(t *testing.T) {
		w := app.Do(testutil.MakeRequest("GET", "/api/v1/polls/"+private.ID, nil, testutil.AuthHeaders(app.Config, reader)))
		testutil.AssertStatus(t, w, http.StatusForbidden)
		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Status != "this account is private" {
			t.Errorf("Unexpected status %q", resp.Status)
		}
	})

	t.Run("missing", func(t *testing.T) {
		w := app.Do(testutil.MakeRequest("GET", "/api/v1/polls/nope", nil, nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("bad token", func(t *testing.T) {
		w := app.Do(testutil.MakeRequest("GET", "/api/v1/polls/"+poll.ID, nil, map[string]string{"Authorization": "Bearer forged.token"}))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestDeletePoll(t *testing.T) {
	app := testutil.SetupTestApp(t)
	creator := testutil.CreateTestUser(t, app.Store, "creator")
	other := testutil.CreateTestUser(t, app.Store, "other")
	poll := testutil.CreateTestPoll(t, app.Store, creator)

	w := app.Do(testutil.MakeRequest("DELETE", "/api/v1/polls/"+poll.ID, nil, testutil.AuthHeaders(app.Config, other)))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = app.Do(testutil.MakeRequest("DELETE", "/api/v1/polls/"+poll.ID, nil, testutil.AuthHeaders(app.Config, creator)))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	w = app.Do(testutil.MakeRequest("GET", "/api/v1/polls/"+poll.ID, nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListUserPollsAndTimeline(t *testing.T) {
	app := testutil.SetupTestApp(t)
	me := testutil.CreateTestUser(t, app.Store, "me")
	friend := testutil.CreateTestUser(t, app.Store, "friend")
	for i := 0; i < 3; i++ {
		testutil.CreateTestPoll(t, app.Store, friend)
	}
	testutil.CreateTestPoll(t, app.Store, me)
	headers := testutil.AuthHeaders(app.Config, me)

	w := app.Do(testutil.MakeRequest("GET", "/api/v1/users/"+friend.ID+"/polls?page=1&page_size=2", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var page models.Page[models.PollResponse]
	testutil.AssertJSON(t, w, &page)
	if page.Count != 3 || len(page.Results) != 2 || page.PageSize != 2 {
		t.Errorf("Unexpected page %+v", page)
	}

	w = app.Do(testutil.MakeRequest("GET", "/api/v1/users/"+friend.ID+"/polls?page=abc", nil, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = app.Do(testutil.MakeRequest("GET", "/api/v1/timeline", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &page)
	if page.Count != 1 {
		t.Errorf("Expected only own poll before following, got %d", page.Count)
	}

	w = app.Do(testutil.MakeRequest("POST", "/api/v1/users/"+friend.ID+"/follow", nil, headers))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = app.Do(testutil.MakeRequest("GET", "/api/v1/timeline", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &page)
	if page.Count != 4 {
		t.Errorf("Expected 4 polls after following, got %d", page.Count)
	}

	w = app.Do(testutil.MakeRequest("GET", "/api/v1/timeline", nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
