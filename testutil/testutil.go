// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/db"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// SetupTestDB creates a fresh sqlite database with the full schema.
// Each test gets its own file under t.TempDir, so tests never share
// state and need no external database server.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "livepoll_test.db")
	conn, err := db.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// CreateTestPoll creates a poll with the given options and returns the
// poll ID and option IDs in creation order.
func CreateTestPoll(t *testing.T, conn *sql.DB, title string, optionTexts ...string) (pollID string, optionIDs []string) {
	t.Helper()

	st := store.New(conn)
	poll := models.Poll{
		ID:          uuid.NewString(),
		Title:       title,
		CreatorName: "TestUser",
		CreatedAt:   time.Now(),
	}

	options := make([]models.Option, len(optionTexts))
	optionIDs = make([]string, len(optionTexts))
	for i, text := range optionTexts {
		options[i] = models.Option{
			ID:     uuid.NewString(),
			PollID: poll.ID,
			Text:   text,
		}
		optionIDs[i] = options[i].ID
	}

	if err := st.CreatePoll(poll, options); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return poll.ID, optionIDs
}

// InsertTestVote appends a vote record directly through the ledger.
func InsertTestVote(t *testing.T, conn *sql.DB, pollID, optionID, voterKey string, anonymous bool) {
	t.Helper()

	st := store.New(conn)
	err := st.InsertVoteIfAbsent(models.VoteRecord{
		PollID:      pollID,
		OptionID:    optionID,
		VoterKey:    voterKey,
		IsAnonymous: anonymous,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to insert test vote: %v", err)
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
