// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/identity"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/tally"
)

// Poll creation validation errors. Handlers map these to 400 responses.
var (
	ErrTitleRequired   = errors.New("title is required")
	ErrTooFewOptions   = errors.New("poll must have at least 2 options")
	ErrEmptyOption     = errors.New("option text cannot be empty")
	ErrDuplicateOption = errors.New("option texts must be unique within a poll")
)

// User-facing messages for expected vote rejections.
const (
	msgVoteRecorded   = "Vote recorded"
	msgAlreadyVoted   = "You have already voted on this poll"
	msgPollNotFound   = "Poll not found"
	msgOptionNotFound = "Option not found for this poll"
	msgMissingToken   = "Anonymous vote requires an anonymous user ID"
)

// Caller identifies the requester for read projections: the session
// key the boundary resolved, plus any anonymous token the client
// presents. A caller "has voted" if any of its keys appears in the
// ledger, so the vote-before-reveal flow works for anonymous voters
// whose token differs from their session.
type Caller struct {
	SessionID   string
	AnonymousID string
}

func (c Caller) keys() []string {
	keys := []string{}
	if c.SessionID != "" {
		keys = append(keys, c.SessionID)
	}
	if c.AnonymousID != "" {
		keys = append(keys, c.AnonymousID)
	}
	return keys
}

// Service orchestrates vote attempts and read projections over the
// injected store. Expected rejections come back as result values;
// only storage faults surface as errors.
type Service struct {
	store store.Store
}

func New(st store.Store) *Service {
	return &Service{store: st}
}

// CreatePoll validates and persists a new poll with its options.
// Polls and options are immutable once created.
func (s *Service) CreatePoll(req models.CreatePollRequest) (models.PollDetail, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.PollDetail{}, ErrTitleRequired
	}
	if len(req.Options) < 2 {
		return models.PollDetail{}, ErrTooFewOptions
	}

	seen := make(map[string]bool, len(req.Options))
	texts := make([]string, len(req.Options))
	for i, raw := range req.Options {
		text := strings.TrimSpace(raw)
		if text == "" {
			return models.PollDetail{}, ErrEmptyOption
		}
		if seen[text] {
			return models.PollDetail{}, ErrDuplicateOption
		}
		seen[text] = true
		texts[i] = text
	}

	// An anonymous creator's name is dropped, not just hidden: we never
	// retain what we promise not to show.
	creatorName := strings.TrimSpace(req.CreatorName)
	if req.IsAnonymousCreator {
		creatorName = ""
	}

	poll := models.Poll{
		ID:                 uuid.NewString(),
		Title:              title,
		CreatorName:        creatorName,
		IsAnonymousCreator: req.IsAnonymousCreator,
		CreatedAt:          time.Now(),
	}

	options := make([]models.Option, len(texts))
	for i, text := range texts {
		options[i] = models.Option{
			ID:     uuid.NewString(),
			PollID: poll.ID,
			Text:   text,
		}
	}

	if err := s.store.CreatePoll(poll, options); err != nil {
		return models.PollDetail{}, fmt.Errorf("failed to create poll: %w", err)
	}

	slog.Info("poll created", "poll_id", poll.ID, "options", len(options), "anonymous_creator", poll.IsAnonymousCreator)

	return models.PollDetail{
		PollSummary: models.PollSummary{
			ID:                 poll.ID,
			Title:              poll.Title,
			CreatorName:        poll.CreatorName,
			IsAnonymousCreator: poll.IsAnonymousCreator,
			OptionCount:        len(options),
			CreatedAt:          poll.CreatedAt,
			CreatedAgo:         humanize.Time(poll.CreatedAt),
		},
		Options: options,
	}, nil
}

// ListPolls returns summaries for all polls, newest first, annotated
// with the caller's voted status.
func (s *Service) ListPolls(caller Caller) ([]models.PollSummary, error) {
	polls, err := s.store.ListPolls()
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PollSummary, len(polls))
	for i, poll := range polls {
		summary, err := s.summarize(poll, caller)
		if err != nil {
			return nil, err
		}
		summaries[i] = summary
	}
	return summaries, nil
}

// GetPoll returns the full poll view. Results are included only when
// the caller has already voted; until then a voter sees the options
// and the running vote count but not the breakdown.
func (s *Service) GetPoll(id string, caller Caller) (models.PollDetail, error) {
	poll, options, err := s.store.GetPoll(id)
	if err != nil {
		return models.PollDetail{}, err
	}

	summary, err := s.summarize(poll, caller)
	if err != nil {
		return models.PollDetail{}, err
	}

	detail := models.PollDetail{
		PollSummary: summary,
		Options:     options,
	}

	if summary.UserHasVoted {
		counts, err := s.store.OptionCounts(poll.ID)
		if err != nil {
			return models.PollDetail{}, err
		}
		result := tally.Compute(options, counts)
		detail.Results = result.Options
		detail.VoteCount = result.TotalVotes
	}

	return detail, nil
}

// Vote runs a vote attempt end-to-end: resolve the voter key, then
// append to the ledger. All expected rejections become a
// success=false response with a human-readable message; the returned
// error is reserved for storage faults.
func (s *Service) Vote(pollID string, req models.VoteRequest, sessionID string) (models.VoteResponse, error) {
	voterKey, err := identity.ResolveVoterKey(sessionID, req.IsAnonymous, req.AnonymousUserID)
	if errors.Is(err, identity.ErrMissingAnonymousToken) {
		return models.VoteResponse{Success: false, Message: msgMissingToken}, nil
	}
	if err != nil {
		// A missing session is a boundary bug, not a voter mistake.
		return models.VoteResponse{}, err
	}

	rec := models.VoteRecord{
		PollID:      pollID,
		OptionID:    req.OptionID,
		VoterKey:    voterKey,
		IsAnonymous: req.IsAnonymous,
		CreatedAt:   time.Now(),
	}

	err = s.store.InsertVoteIfAbsent(rec)
	switch {
	case err == nil:
		slog.Info("vote recorded", "poll_id", pollID, "option_id", req.OptionID, "anonymous", req.IsAnonymous)
		return models.VoteResponse{Success: true, Message: msgVoteRecorded}, nil
	case errors.Is(err, store.ErrAlreadyVoted):
		return models.VoteResponse{Success: false, Message: msgAlreadyVoted}, nil
	case errors.Is(err, store.ErrPollNotFound):
		return models.VoteResponse{Success: false, Message: msgPollNotFound}, nil
	case errors.Is(err, store.ErrOptionNotFound):
		return models.VoteResponse{Success: false, Message: msgOptionNotFound}, nil
	default:
		return models.VoteResponse{}, err
	}
}

func (s *Service) summarize(poll models.Poll, caller Caller) (models.PollSummary, error) {
	voteCount, err := s.store.CountVotes(poll.ID)
	if err != nil {
		return models.PollSummary{}, err
	}
	optionCount, err := s.store.CountOptions(poll.ID)
	if err != nil {
		return models.PollSummary{}, err
	}

	hasVoted := false
	for _, key := range caller.keys() {
		voted, err := s.store.HasVoted(poll.ID, key)
		if err != nil {
			return models.PollSummary{}, err
		}
		if voted {
			hasVoted = true
			break
		}
	}

	return models.PollSummary{
		ID:                 poll.ID,
		Title:              poll.Title,
		CreatorName:        poll.CreatorName,
		IsAnonymousCreator: poll.IsAnonymousCreator,
		VoteCount:          voteCount,
		OptionCount:        optionCount,
		CreatedAt:          poll.CreatedAt,
		CreatedAgo:         humanize.Time(poll.CreatedAt),
		UserHasVoted:       hasVoted,
	}, nil
}
