// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package service orchestrates poll creation, vote admission, and read
projections.

# Construction

The service takes the storage abstraction by injection; it holds no
other state:

	svc := service.New(store.New(conn))

# Vote Attempts

Vote resolves the voter key (identity package) and appends to the
ledger (store package). Every expected rejection is a value:

	resp, err := svc.Vote(pollID, req, sessionID)

resp.Success is false with a human-readable message for AlreadyVoted,
PollNotFound, OptionNotFound, and a missing anonymous token. err is
non-nil only for storage faults, which handlers surface as HTTP 5xx.
Nothing retries; a rejected attempt is terminal.

# Read Projections

ListPolls and GetPoll annotate results per caller. A Caller carries
the session key plus any anonymous token the client presents; the
caller counts as having voted when either key appears in the ledger.

GetPoll enforces reveal gating: the results breakdown is included only
once the caller has voted. This is a product rule (vote before you
peek), not a technical constraint.

# Poll Creation

CreatePoll validates the request (non-empty title, at least 2 options,
option texts non-empty and unique) and persists poll and options
atomically. Polls are immutable afterwards. When the creator asks to
stay anonymous their name is discarded before it reaches storage.
*/
package service
