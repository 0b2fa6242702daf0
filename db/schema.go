// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database.
// dbType is "sqlite" or "postgres"; anything else is an error.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "postgres":
		return sql.Open("postgres", url)
	case "sqlite":
		conn, err := sql.Open("sqlite", url)
		if err != nil {
			return nil, err
		}
		// SQLite allows a single writer; serialize connections so
		// concurrent votes queue instead of failing with SQLITE_BUSY.
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    creator_name TEXT,
    is_anonymous_creator BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_created_at ON poll(created_at);

-- Options
CREATE TABLE IF NOT EXISTS option (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_option_poll_id ON option(poll_id);

-- Votes
-- The primary key is the ledger's uniqueness constraint: at most one
-- vote per (poll_id, voter_key), enforced by the storage engine so two
-- concurrent inserts with the same key serialize to one success.
CREATE TABLE IF NOT EXISTS vote (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL REFERENCES option(id) ON DELETE CASCADE,
    voter_key TEXT NOT NULL,
    is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (poll_id, voter_key)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_option_id ON vote(option_id);
`
