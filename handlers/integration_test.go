// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/pollgram/models"
	"github.com/danielhkuo/pollgram/testutil"
)

func voteCounts(t *testing.T, resp models.PollResponse) map[int]int64 {
	t.Helper()
	counts := make(map[int]int64, len(resp.Choices))
	for _, c := range resp.Choices {
		if c.VoteCount == nil {
			t.Fatalf("Expected vote_count for choice %d", c.Order)
		}
		counts[c.Order] = *c.VoteCount
	}
	return counts
}

func intPtr(n int) *int { return &n }

// TestFullPollFlow creates a poll over the API and walks it through the
// voting lifecycle
func TestFullPollFlow(t *testing.T) {
	app := testutil.SetupTestApp(t)
	creator := testutil.CreateTestUser(t, app.Store, "creator")
	voter := testutil.CreateTestUser(t, app.Store, "voter")
	creatorHeaders := testutil.AuthHeaders(app.Config, creator)
	voterHeaders := testutil.AuthHeaders(app.Config, voter)

	// Step 1: create
	w := app.Do(testutil.MakeRequest("POST", "/api/v1/polls", models.CreatePollRequest{
		Question: "How old is the universe?",
		Choices:  []models.ChoiceRequest{{Order: 1, Context: "48"}, {Order: 2, Context: "22"}},
	}, creatorHeaders))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.PollResponse
	testutil.AssertJSON(t, w, &created)
	pollPath := "/api/v1/polls/" + created.ID

	// Step 2: results are hidden before voting
	w = app.Do(testutil.MakeRequest("GET", pollPath, nil, voterHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)
	var before models.PollResponse
	testutil.AssertJSON(t, w, &before)
	if before.CanSeeResults || before.AllVotes != nil {
		t.Errorf("Expected hidden results before voting, got %+v", before)
	}

	// Step 3: vote for "22"
	w = app.Do(testutil.MakeRequest("POST", pollPath+"/vote", models.CastVoteRequest{Selected: []int{2}}, voterHeaders))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Step 4: results are visible after voting
	w = app.Do(testutil.MakeRequest("GET", pollPath, nil, voterHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)
	var after models.PollResponse
	testutil.AssertJSON(t, w, &after)
	counts := voteCounts(t, after)
	if counts[1] != 0 || counts[2] != 1 {
		t.Errorf("Expected counts {1:0, 2:1}, got %v", counts)
	}
	if len(after.VotedChoices) != 1 || after.VotedChoices[0] != 2 {
		t.Errorf("Expected voted_choices [2], got %v", after.VotedChoices)
	}

	// Step 5: the voter shows up in the voters list
	w = app.Do(testutil.MakeRequest("GET", pollPath+"/choices/2/voters", nil, voterHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)
	var voters models.Page[models.UserSummary]
	testutil.AssertJSON(t, w, &voters)
	if voters.Count != 1 || voters.Results[0].Username != "voter" {
		t.Errorf("Unexpected voters %+v", voters)
	}

	// Step 6: retracting hides the results again
	w = app.Do(testutil.MakeRequest("DELETE", pollPath+"/vote", nil, voterHeaders))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	w = app.Do(testutil.MakeRequest("GET", pollPath, nil, voterHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)
	var retracted models.PollResponse
	testutil.AssertJSON(t, w, &retracted)
	if retracted.CanSeeResults || retracted.AllVotes != nil {
		t.Errorf("Expected results hidden after retraction, got %+v", retracted)
	}

	// Step 7: the creator still sees the now-empty tally
	w = app.Do(testutil.MakeRequest("GET", pollPath, nil, creatorHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)
	var own models.PollResponse
	testutil.AssertJSON(t, w, &own)
	if own.AllVotes == nil || *own.AllVotes != 0 {
		t.Errorf("Expected all_votes 0 for creator, got %v", own.AllVotes)
	}
}

func TestVotingScenarios(t *testing.T) {
	app := testutil.SetupTestApp(t)
	creator := testutil.CreateTestUser(t, app.Store, "creator")
	voter := testutil.CreateTestUser(t, app.Store, "voter")
	creatorHeaders := testutil.AuthHeaders(app.Config, creator)
	voterHeaders := testutil.AuthHeaders(app.Config, voter)

	t.Run("single choice vote then duplicate", func(t *testing.T) {
		poll := testutil.CreateTestPoll(t, app.Store, creator)
		path := "/api/v1/polls/" + poll.ID

		w := app.Do(testutil.MakeRequest("POST", path+"/vote", models.CastVoteRequest{Selected: []int{2}}, voterHeaders))
		testutil.AssertStatus(t, w, http.StatusCreated)

		w = app.Do(testutil.MakeRequest("POST", path+"/vote", models.CastVoteRequest{Selected: []int{1}}, voterHeaders))
		testutil.AssertStatus(t, w, http.StatusConflict)

		w = app.Do(testutil.MakeRequest("GET", path, nil, creatorHeaders))
		var resp models.PollResponse
		testutil.AssertJSON(t, w, &resp)
		counts := voteCounts(t, resp)
		if counts[1] != 0 || counts[2] != 1 {
			t.Errorf("Expected counts unchanged at {1:0, 2:1}, got %v", counts)
		}
	})

	t.Run("unknown order falls below minimum", func(t *testing.T) {
		poll := testutil.CreateTestPoll(t, app.Store, creator, testutil.WithChoices(1, 3), testutil.WithBounds(2, 3))
		w := app.Do(testutil.MakeRequest("POST", "/api/v1/polls/"+poll.ID+"/vote", models.CastVoteRequest{Selected: []int{1, 2}}, voterHeaders))
		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("multi choice within bounds", func(t *testing.T) {
		w := app.Do(testutil.MakeRequest("POST", "/api/v1/polls", models.CreatePollRequest{
			Question:         "Pick two",
			Choices:          []models.ChoiceRequest{{Order: 1, Context: "a"}, {Order: 2, Context: "b"}, {Order: 3, Context: "c"}},
			MinChoiceCanVote: intPtr(2),
			MaxChoiceCanVote: intPtr(2),
		}, creatorHeaders))
		testutil.AssertStatus(t, w, http.StatusCreated)
		var created models.PollResponse
		testutil.AssertJSON(t, w, &created)

		w = app.Do(testutil.MakeRequest("POST", "/api/v1/polls/"+created.ID+"/vote", models.CastVoteRequest{Selected: []int{3, 1, 3}}, voterHeaders))
		testutil.AssertStatus(t, w, http.StatusCreated)
		var cast models.CastVoteResponse
		testutil.AssertJSON(t, w, &cast)
		if len(cast.Selected) != 2 || cast.Selected[0] != 1 || cast.Selected[1] != 3 {
			t.Errorf("Expected selected [1 3], got %v", cast.Selected)
		}
	})

	t.Run("retract on non-retractable poll", func(t *testing.T) {
		poll := testutil.CreateTestPoll(t, app.Store, creator, testutil.NotRetractable())
		path := "/api/v1/polls/" + poll.ID + "/vote"

		w := app.Do(testutil.MakeRequest("POST", path, models.CastVoteRequest{Selected: []int{1}}, voterHeaders))
		testutil.AssertStatus(t, w, http.StatusCreated)
		w = app.Do(testutil.MakeRequest("DELETE", path, nil, voterHeaders))
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("hidden poll counts", func(t *testing.T) {
		poll := testutil.CreateTestPoll(t, app.Store, creator, testutil.WithVisibility(models.Hidden))
		testutil.CreateTestVote(t, app.Store, poll, voter, 1)

		w := app.Do(testutil.MakeRequest("GET", "/api/v1/polls/"+poll.ID, nil, voterHeaders))
		testutil.AssertStatus(t, w, http.StatusOK)
		var hidden models.PollResponse
		testutil.AssertJSON(t, w, &hidden)
		for _, c := range hidden.Choices {
			if c.VoteCount != nil {
				t.Errorf("Expected null vote_count for choice %d", c.Order)
			}
		}

		w = app.Do(testutil.MakeRequest("GET", "/api/v1/polls/"+poll.ID, nil, creatorHeaders))
		var shown models.PollResponse
		testutil.AssertJSON(t, w, &shown)
		if counts := voteCounts(t, shown); counts[1] != 1 {
			t.Errorf("Expected creator to see 1 vote on choice 1, got %v", counts)
		}
	})
}
