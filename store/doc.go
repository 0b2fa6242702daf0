// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer for polls, options, and votes.

# Store Interface

The Store interface is the only way the service touches the database.
It is initialized once at startup and passed by reference; there are no
package-level singletons:

	st := store.New(conn)
	svc := service.New(st)

# Vote Ledger

InsertVoteIfAbsent owns the system's central invariant: at most one
vote per (poll, voter key). Validation short-circuits in order:

 1. Poll exists, else ErrPollNotFound
 2. Option belongs to the poll, else ErrOptionNotFound
 3. Insert; the (poll_id, voter_key) primary key makes the duplicate
    check and the insert one atomic step, and a constraint violation
    becomes ErrAlreadyVoted

Votes are append-only. Nothing in this package updates or deletes a
vote row.

# Error Translation

Unique-constraint violations are detected by inspecting the driver
error text, covering both sqlite ("UNIQUE constraint failed") and
postgres ("duplicate key value violates unique constraint"). All other
database errors are wrapped and propagated as infrastructure failures.
*/
package store
