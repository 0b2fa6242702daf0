// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, options, creator_name, is_anonymous_creator
  - VoteRequest: option_id, is_anonymous, anonymous_user_id

# Response Types

Types for JSON responses:

  - VoteResponse: success, message (expected rejections are values, not
    HTTP errors)
  - SessionResponse: session_id, is_new
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: poll metadata, immutable after creation
  - Option: voting option, immutable after creation
  - VoteRecord: one accepted vote in the append-only ledger

# Projection Types

Derived read models, recomputed from the ledger on every read:

  - OptionResult: per-option count and rounded percentage
  - PollSummary: list-view projection with per-caller user_has_voted
  - PollDetail: summary plus options, plus results once the caller voted
*/
package models
