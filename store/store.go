// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/livepoll/models"
)

var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("option not found")
	ErrAlreadyVoted   = errors.New("already voted")
)

// Store is the persistence boundary for polls, options, and the vote
// ledger. Implementations must enforce the (poll_id, voter_key)
// uniqueness constraint atomically against concurrent inserts.
type Store interface {
	CreatePoll(poll models.Poll, options []models.Option) error
	GetPoll(id string) (models.Poll, []models.Option, error)
	ListPolls() ([]models.Poll, error)

	// InsertVoteIfAbsent appends a vote record, validating in order:
	// poll exists, option belongs to the poll, voter key unused.
	// Returns ErrPollNotFound, ErrOptionNotFound, or ErrAlreadyVoted;
	// on any rejection no state changes.
	InsertVoteIfAbsent(rec models.VoteRecord) error

	HasVoted(pollID, voterKey string) (bool, error)
	CountVotes(pollID string) (int, error)
	CountOptions(pollID string) (int, error)

	// OptionCounts returns vote counts keyed by option ID. Options
	// with no votes are absent from the map.
	OptionCounts(pollID string) (map[string]int, error)
}

// SQLStore implements Store on database/sql. It works against both
// sqlite and postgres; placeholders use $n, which both drivers accept.
type SQLStore struct {
	db *sql.DB
}

func New(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// CreatePoll inserts a poll and its options atomically. Option order
// is recorded in the position column so tallies can report options in
// creation order.
func (s *SQLStore) CreatePoll(poll models.Poll, options []models.Option) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO poll (id, title, creator_name, is_anonymous_creator, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, poll.ID, poll.Title, poll.CreatorName, poll.IsAnonymousCreator, poll.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	for i, opt := range options {
		_, err = tx.Exec(`
			INSERT INTO option (id, poll_id, text, position)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, poll.ID, opt.Text, i)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit poll: %w", err)
	}
	return nil
}

func (s *SQLStore) GetPoll(id string) (models.Poll, []models.Option, error) {
	var poll models.Poll
	err := s.db.QueryRow(`
		SELECT id, title, creator_name, is_anonymous_creator, created_at
		FROM poll
		WHERE id = $1
	`, id).Scan(&poll.ID, &poll.Title, &poll.CreatorName, &poll.IsAnonymousCreator, &poll.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Poll{}, nil, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to query poll: %w", err)
	}

	options, err := s.pollOptions(id)
	if err != nil {
		return models.Poll{}, nil, err
	}
	return poll, options, nil
}

func (s *SQLStore) pollOptions(pollID string) ([]models.Option, error) {
	rows, err := s.db.Query(`
		SELECT id, poll_id, text
		FROM option
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

// ListPolls returns all polls, newest first.
func (s *SQLStore) ListPolls() ([]models.Poll, error) {
	rows, err := s.db.Query(`
		SELECT id, title, creator_name, is_anonymous_creator, created_at
		FROM poll
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var p models.Poll
		if err := rows.Scan(&p.ID, &p.Title, &p.CreatorName, &p.IsAnonymousCreator, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	return polls, rows.Err()
}

// InsertVoteIfAbsent appends a vote record. The duplicate check and the
// insert are a single atomic step: the (poll_id, voter_key) primary key
// rejects the second of two concurrent inserts, which is translated to
// ErrAlreadyVoted.
func (s *SQLStore) InsertVoteIfAbsent(rec models.VoteRecord) error {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)
	`, rec.PollID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}
	if !exists {
		return ErrPollNotFound
	}

	err = s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM option WHERE id = $1 AND poll_id = $2)
	`, rec.OptionID, rec.PollID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to query option: %w", err)
	}
	if !exists {
		return ErrOptionNotFound
	}

	_, err = s.db.Exec(`
		INSERT INTO vote (poll_id, option_id, voter_key, is_anonymous, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.PollID, rec.OptionID, rec.VoterKey, rec.IsAnonymous, rec.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyVoted
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func (s *SQLStore) HasVoted(pollID, voterKey string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE poll_id = $1 AND voter_key = $2
		)
	`, pollID, voterKey).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query vote: %w", err)
	}
	return exists, nil
}

func (s *SQLStore) CountVotes(pollID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM vote WHERE poll_id = $1
	`, pollID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

func (s *SQLStore) CountOptions(pollID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM option WHERE poll_id = $1
	`, pollID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count options: %w", err)
	}
	return count, nil
}

func (s *SQLStore) OptionCounts(pollID string) (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT option_id, COUNT(*)
		FROM vote
		WHERE poll_id = $1
		GROUP BY option_id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var optionID string
		var count int
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[optionID] = count
	}
	return counts, rows.Err()
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// Both supported drivers surface these only through the error text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // postgres
}
