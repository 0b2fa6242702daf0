// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity resolves voter keys and mints session identifiers.

# Voter Keys

ResolveVoterKey maps a vote attempt's transport context to the single
opaque string the vote ledger deduplicates on:

	key, err := identity.ResolveVoterKey(sessionID, req.IsAnonymous, req.AnonymousUserID)

Anonymous votes use the client-supplied token; named votes use the
session identifier. Errors:

  - ErrMissingAnonymousToken: anonymous vote without a token
  - ErrMissingSessionID: named vote without a session (boundary bug)

# Session IDs

GenerateSessionID creates a 192-bit random URL-safe identifier. It is
called only at the transport boundary (session middleware) when a caller
arrives without a session.

# Trust Model

Neither key kind is a verified identity. The anonymous token is
generated and held by the client; the session ID is a bearer value.
The only contract is equality-based deduplication: same key, same
voter. A determined caller holding both a session and a separate
anonymous token can vote once under each - an accepted limitation,
same trust level as the transport.
*/
package identity
