package service

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/testutil"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	return New(store.New(conn)), func() { conn.Close() }
}

func createLunchPoll(t *testing.T, svc *Service) models.PollDetail {
	t.Helper()
	detail, err := svc.CreatePoll(models.CreatePollRequest{
		Title:       "Lunch?",
		Options:     []string{"Pizza", "Sushi"},
		CreatorName: "Alice",
	})
	if err != nil {
		t.Fatalf("Failed to create poll: %v", err)
	}
	return detail
}

func TestCreatePollValidation(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	tests := []struct {
		name    string
		req     models.CreatePollRequest
		wantErr error
	}{
		{
			name: "valid poll",
			req: models.CreatePollRequest{
				Title:       "Lunch?",
				Options:     []string{"Pizza", "Sushi"},
				CreatorName: "Alice",
			},
		},
		{
			name: "missing title",
			req: models.CreatePollRequest{
				Options: []string{"Pizza", "Sushi"},
			},
			wantErr: ErrTitleRequired,
		},
		{
			name: "whitespace title",
			req: models.CreatePollRequest{
				Title:   "   ",
				Options: []string{"Pizza", "Sushi"},
			},
			wantErr: ErrTitleRequired,
		},
		{
			name: "single option",
			req: models.CreatePollRequest{
				Title:   "Lunch?",
				Options: []string{"Pizza"},
			},
			wantErr: ErrTooFewOptions,
		},
		{
			name: "empty option text",
			req: models.CreatePollRequest{
				Title:   "Lunch?",
				Options: []string{"Pizza", "  "},
			},
			wantErr: ErrEmptyOption,
		},
		{
			name: "duplicate option text",
			req: models.CreatePollRequest{
				Title:   "Lunch?",
				Options: []string{"Pizza", "Pizza"},
			},
			wantErr: ErrDuplicateOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := svc.CreatePoll(tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if detail.ID == "" {
				t.Error("Expected generated poll ID")
			}
			if len(detail.Options) != 2 {
				t.Errorf("Expected 2 options, got %d", len(detail.Options))
			}
			if detail.Results != nil {
				t.Error("New poll must not expose results")
			}
		})
	}
}

func TestCreatePollAnonymousCreatorDropsName(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	detail, err := svc.CreatePoll(models.CreatePollRequest{
		Title:              "Secret ballot?",
		Options:            []string{"Yes", "No"},
		CreatorName:        "Alice",
		IsAnonymousCreator: true,
	})
	if err != nil {
		t.Fatalf("Failed to create poll: %v", err)
	}

	if detail.CreatorName != "" {
		t.Errorf("Anonymous creator name should be dropped, got %q", detail.CreatorName)
	}
	if !detail.IsAnonymousCreator {
		t.Error("Expected anonymous creator flag to be set")
	}

	// The name must be gone from storage too, not just the response
	got, err := svc.GetPoll(detail.ID, Caller{SessionID: "reader"})
	if err != nil {
		t.Fatalf("Failed to get poll: %v", err)
	}
	if got.CreatorName != "" {
		t.Errorf("Stored creator name should be empty, got %q", got.CreatorName)
	}
}

// The scenario from the product brief: named voter A, repeat attempt by
// A, anonymous voter B, then a 50/50 tally.
func TestVoteScenario(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	poll := createLunchPoll(t, svc)
	pizza, sushi := poll.Options[0], poll.Options[1]

	// Voter A votes Pizza by name
	resp, err := svc.Vote(poll.ID, models.VoteRequest{OptionID: pizza.ID}, "session-a")
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if !resp.Success {
		t.Fatalf("Expected success, got %q", resp.Message)
	}

	// Voter A tries again with a different option
	resp, err = svc.Vote(poll.ID, models.VoteRequest{OptionID: sushi.ID}, "session-a")
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if resp.Success {
		t.Fatal("Expected second vote to be rejected")
	}
	if !strings.Contains(strings.ToLower(resp.Message), "already voted") {
		t.Errorf("Expected message mentioning already voted, got %q", resp.Message)
	}

	// Voter B votes Sushi anonymously
	resp, err = svc.Vote(poll.ID, models.VoteRequest{
		OptionID:        sushi.ID,
		IsAnonymous:     true,
		AnonymousUserID: "tok1",
	}, "session-b")
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if !resp.Success {
		t.Fatalf("Expected success, got %q", resp.Message)
	}

	// Tally: 2 total, 50/50
	detail, err := svc.GetPoll(poll.ID, Caller{SessionID: "session-a"})
	if err != nil {
		t.Fatalf("Failed to get poll: %v", err)
	}
	if detail.VoteCount != 2 {
		t.Errorf("Expected 2 total votes, got %d", detail.VoteCount)
	}
	if len(detail.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(detail.Results))
	}
	for _, res := range detail.Results {
		if res.VoteCount != 1 || res.Percentage != 50 {
			t.Errorf("Option %s: expected 1 vote at 50%%, got %d at %d%%",
				res.OptionText, res.VoteCount, res.Percentage)
		}
	}
}

func TestVoteExpectedRejections(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	poll := createLunchPoll(t, svc)
	other := createLunchPoll(t, svc)

	tests := []struct {
		name        string
		pollID      string
		req         models.VoteRequest
		wantMessage string
	}{
		{
			name:        "unknown poll",
			pollID:      "nonexistent",
			req:         models.VoteRequest{OptionID: poll.Options[0].ID},
			wantMessage: "Poll not found",
		},
		{
			name:        "option from another poll",
			pollID:      poll.ID,
			req:         models.VoteRequest{OptionID: other.Options[0].ID},
			wantMessage: "Option not found",
		},
		{
			name:        "anonymous without token",
			pollID:      poll.ID,
			req:         models.VoteRequest{OptionID: poll.Options[0].ID, IsAnonymous: true},
			wantMessage: "anonymous user ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Vote(tt.pollID, tt.req, "session-x")
			if err != nil {
				t.Fatalf("Expected rejection as value, got error: %v", err)
			}
			if resp.Success {
				t.Fatal("Expected rejection")
			}
			if !strings.Contains(resp.Message, tt.wantMessage) {
				t.Errorf("Expected message containing %q, got %q", tt.wantMessage, resp.Message)
			}
		})
	}

	// None of the rejections may have touched the ledger
	detail, err := svc.GetPoll(poll.ID, Caller{SessionID: "fresh"})
	if err != nil {
		t.Fatalf("Failed to get poll: %v", err)
	}
	if detail.VoteCount != 0 {
		t.Errorf("Rejected attempts changed the ledger: %d votes", detail.VoteCount)
	}
}

func TestVoteMissingSessionIsAnError(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	poll := createLunchPoll(t, svc)

	// A named vote with no session means the boundary failed its
	// precondition; that surfaces as an error, not a rejection value.
	_, err := svc.Vote(poll.ID, models.VoteRequest{OptionID: poll.Options[0].ID}, "")
	if err == nil {
		t.Fatal("Expected error for missing session")
	}
}

func TestVoteIdempotentRejection(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	poll := createLunchPoll(t, svc)
	req := models.VoteRequest{OptionID: poll.Options[0].ID}

	first, err := svc.Vote(poll.ID, req, "session-a")
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	second, err := svc.Vote(poll.ID, req, "session-a")
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	if !first.Success || second.Success {
		t.Errorf("Expected accepted then rejected, got %v then %v", first.Success, second.Success)
	}
}

// A voter holding both a session and a separate anonymous token can
// vote once under each key. This is a known limitation of the
// self-asserted identity model, kept deliberately rather than guessed
// away; the ledger only promises equality-based deduplication.
func TestDualModeDoubleVoteAllowed(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	poll := createLunchPoll(t, svc)

	named, err := svc.Vote(poll.ID, models.VoteRequest{OptionID: poll.Options[0].ID}, "session-a")
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	anon, err := svc.Vote(poll.ID, models.VoteRequest{
		OptionID:        poll.Options[1].ID,
		IsAnonymous:     true,
		AnonymousUserID: "tok-a",
	}, "session-a")
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	if !named.Success || !anon.Success {
		t.Fatalf("Expected both modes to be accepted: named=%v anon=%v", named.Success, anon.Success)
	}

	detail, err := svc.GetPoll(poll.ID, Caller{SessionID: "session-a"})
	if err != nil {
		t.Fatalf("Failed to get poll: %v", err)
	}
	if detail.VoteCount != 2 {
		t.Errorf("Expected 2 votes in ledger, got %d", detail.VoteCount)
	}
}

func TestRevealGating(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	poll := createLunchPoll(t, svc)

	// Seed a vote from someone else so there are results to hide
	if _, err := svc.Vote(poll.ID, models.VoteRequest{OptionID: poll.Options[0].ID}, "session-other"); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	// Before voting: options and vote count visible, results hidden
	before, err := svc.GetPoll(poll.ID, Caller{SessionID: "session-a"})
	if err != nil {
		t.Fatalf("Failed to get poll: %v", err)
	}
	if before.UserHasVoted {
		t.Error("Fresh caller should not have voted")
	}
	if before.Results != nil {
		t.Error("Results must be hidden before the caller votes")
	}
	if before.VoteCount != 1 {
		t.Errorf("Vote count should be visible pre-vote, got %d", before.VoteCount)
	}
	if len(before.Options) != 2 {
		t.Errorf("Options should be visible pre-vote, got %d", len(before.Options))
	}

	// After voting: results revealed
	if _, err := svc.Vote(poll.ID, models.VoteRequest{OptionID: poll.Options[1].ID}, "session-a"); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	after, err := svc.GetPoll(poll.ID, Caller{SessionID: "session-a"})
	if err != nil {
		t.Fatalf("Failed to get poll: %v", err)
	}
	if !after.UserHasVoted {
		t.Error("Caller should be marked as having voted")
	}
	if len(after.Results) != 2 {
		t.Fatalf("Expected results after voting, got %v", after.Results)
	}
}

// An anonymous voter's token differs from their session, so reads
// accept the token as a second caller key; without it the voter would
// never see the results they unlocked.
func TestRevealGatingForAnonymousVoter(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	poll := createLunchPoll(t, svc)

	resp, err := svc.Vote(poll.ID, models.VoteRequest{
		OptionID:        poll.Options[0].ID,
		IsAnonymous:     true,
		AnonymousUserID: "tok1",
	}, "session-a")
	if err != nil || !resp.Success {
		t.Fatalf("Anonymous vote failed: %v %v", err, resp)
	}

	// Session alone does not unlock results
	bySession, err := svc.GetPoll(poll.ID, Caller{SessionID: "session-a"})
	if err != nil {
		t.Fatalf("Failed to get poll: %v", err)
	}
	if bySession.UserHasVoted {
		t.Error("Session key alone should not count as having voted")
	}

	// Session plus the anonymous token does
	withToken, err := svc.GetPoll(poll.ID, Caller{SessionID: "session-a", AnonymousID: "tok1"})
	if err != nil {
		t.Fatalf("Failed to get poll: %v", err)
	}
	if !withToken.UserHasVoted {
		t.Error("Anonymous token should count as having voted")
	}
	if len(withToken.Results) != 2 {
		t.Errorf("Expected results for anonymous voter, got %v", withToken.Results)
	}
}

func TestListPolls(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	poll := createLunchPoll(t, svc)
	if _, err := svc.CreatePoll(models.CreatePollRequest{
		Title:   "Dinner?",
		Options: []string{"Ramen", "Curry", "Pho"},
	}); err != nil {
		t.Fatalf("Failed to create poll: %v", err)
	}

	if _, err := svc.Vote(poll.ID, models.VoteRequest{OptionID: poll.Options[0].ID}, "session-a"); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	summaries, err := svc.ListPolls(Caller{SessionID: "session-a"})
	if err != nil {
		t.Fatalf("Failed to list polls: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 polls, got %d", len(summaries))
	}

	byTitle := make(map[string]models.PollSummary)
	for _, s := range summaries {
		byTitle[s.Title] = s
	}

	lunch := byTitle["Lunch?"]
	if lunch.VoteCount != 1 || !lunch.UserHasVoted || lunch.OptionCount != 2 {
		t.Errorf("Lunch summary wrong: %+v", lunch)
	}
	if lunch.CreatedAgo == "" {
		t.Error("Expected humanized creation time")
	}

	dinner := byTitle["Dinner?"]
	if dinner.VoteCount != 0 || dinner.UserHasVoted || dinner.OptionCount != 3 {
		t.Errorf("Dinner summary wrong: %+v", dinner)
	}
}

// Two simultaneous attempts with the same voter key must serialize to
// exactly one accepted vote, no matter how the requests interleave.
func TestConcurrentDuplicateVotes(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	poll := createLunchPoll(t, svc)

	numAttempts := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()

			req := models.VoteRequest{OptionID: poll.Options[attempt%2].ID}
			resp, err := svc.Vote(poll.ID, req, "session-contested")
			if err != nil {
				t.Errorf("Vote attempt errored: %v", err)
				return
			}
			if resp.Success {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted vote, got %d", successCount.Load())
	}

	detail, err := svc.GetPoll(poll.ID, Caller{SessionID: "session-contested"})
	if err != nil {
		t.Fatalf("Failed to get poll: %v", err)
	}
	if detail.VoteCount != 1 {
		t.Errorf("Expected 1 vote record, got %d", detail.VoteCount)
	}
}

// Distinct voters submitting concurrently must all be accepted.
func TestConcurrentDistinctVoters(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	poll := createLunchPoll(t, svc)

	numVoters := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voter int) {
			defer wg.Done()

			req := models.VoteRequest{OptionID: poll.Options[voter%2].ID}
			resp, err := svc.Vote(poll.ID, req, "session-"+string(rune('a'+voter)))
			if err != nil {
				t.Errorf("Vote attempt errored: %v", err)
				return
			}
			if resp.Success {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d accepted votes, got %d", numVoters, successCount.Load())
	}

	detail, err := svc.GetPoll(poll.ID, Caller{SessionID: "session-a"})
	if err != nil {
		t.Fatalf("Failed to get poll: %v", err)
	}
	if detail.VoteCount != numVoters {
		t.Errorf("Expected %d vote records, got %d", numVoters, detail.VoteCount)
	}
}
