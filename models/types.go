// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreatePollRequest struct {
	Title              string   `json:"title"`
	Options            []string `json:"options"`
	CreatorName        string   `json:"creator_name"`
	IsAnonymousCreator bool     `json:"is_anonymous_creator"`
}

type VoteRequest struct {
	OptionID        string `json:"option_id"`
	IsAnonymous     bool   `json:"is_anonymous"`
	AnonymousUserID string `json:"anonymous_user_id,omitempty"`
}

// Response types

type VoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	IsNew     bool   `json:"is_new"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Poll struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	CreatorName        string    `json:"creator_name,omitempty"`
	IsAnonymousCreator bool      `json:"is_anonymous_creator"`
	CreatedAt          time.Time `json:"created_at"`
}

type Option struct {
	ID     string `json:"id"`
	PollID string `json:"poll_id"`
	Text   string `json:"text"`
}

// VoteRecord is one accepted vote. Records are append-only: never
// updated, never deleted. VoterKey is an opaque caller-supplied string
// compared only for equality; it is never exposed in JSON.
type VoteRecord struct {
	PollID      string    `json:"poll_id"`
	OptionID    string    `json:"option_id"`
	VoterKey    string    `json:"-"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}

// Projection types

type OptionResult struct {
	OptionID   string `json:"option_id"`
	OptionText string `json:"option_text"`
	VoteCount  int    `json:"vote_count"`
	Percentage int    `json:"percentage"`
}

type PollSummary struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	CreatorName        string    `json:"creator_name,omitempty"`
	IsAnonymousCreator bool      `json:"is_anonymous_creator"`
	VoteCount          int       `json:"vote_count"`
	OptionCount        int       `json:"option_count"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedAgo         string    `json:"created_ago"`
	UserHasVoted       bool      `json:"user_has_voted"`
}

// PollDetail is the full poll view. Results is nil until the caller has
// voted; reveal gating is enforced at the service layer.
type PollDetail struct {
	PollSummary
	Options []Option       `json:"options"`
	Results []OptionResult `json:"results,omitempty"`
}
