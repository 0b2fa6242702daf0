// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "sqlite" (modernc.org/sqlite, CGo-free) and
"postgres" (lib/pq). SQLite connections are limited to a single open
connection so writes serialize instead of hitting SQLITE_BUSY.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - poll: Poll metadata, immutable after creation
  - option: Voting options per poll, ordered by position
  - vote: Append-only vote ledger, one row per accepted vote

# Relationships

	poll 1──* option
	poll 1──* vote

All foreign keys use ON DELETE CASCADE.

# Uniqueness

vote's primary key (poll_id, voter_key) is the system's central
constraint: a voter key can appear at most once per poll, regardless of
whether the vote was named or anonymous. The storage engine enforces it
atomically against concurrent duplicate attempts.
*/
package db
