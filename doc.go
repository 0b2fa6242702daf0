// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the LivePoll API server.

LivePoll is a lightweight polling service: anyone can create a poll,
every voter gets exactly one vote per poll (named or anonymous), and
tallies are recomputed live from the vote ledger. Results stay hidden
from a caller until they have voted.

# Starting the Server

The server runs on a local sqlite file by default:

	go run .

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

# Configuration

Optional settings (flags or env, .env supported):

  - PORT (-p): server port (default: 4000)
  - DATABASE_URL (-d): connection string (required for postgres)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

# Architecture

The server uses dependency injection from the storage layer up:

  - store: storage abstraction and the append-only vote ledger
  - tally: pure tally computation (counts, percentages)
  - identity: voter key resolution and session ID generation
  - service: vote admission orchestration and read projections
  - handlers: HTTP request handlers
  - router: route definitions using Go 1.22+ routing
  - middleware: sessions, CORS, logging, JSON helpers
  - models: request/response types
  - db: driver selection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.

# Trust Model

Voter identity is self-asserted: a session ID minted at the boundary
or an anonymous token generated by the client. Uniqueness is equality
on those opaque strings, best-effort at the transport's trust level; a
caller holding both a session and a separate anonymous token can vote
once under each.
*/
package main
