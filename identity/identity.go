// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingAnonymousToken = errors.New("anonymous vote requires an anonymous token")
	ErrMissingSessionID      = errors.New("session identifier required")
)

// ResolveVoterKey derives the single opaque key used for the ledger's
// uniqueness check from a vote attempt's transport context.
//
// Anonymous votes use the client-supplied token verbatim. The resolver
// never fabricates a token for the caller: a fresh token per request
// would make repeat attempts look like new voters, and any server-side
// default would collide across voters.
//
// Named votes use the session identifier. The boundary layer guarantees
// one is present before a request reaches this point; a missing session
// here is a programming error in the caller, not a voter mistake.
//
// Both kinds land in the same key space: the ledger compares keys only
// for equality, so a voter cannot vote twice within one mode no matter
// which mode they used.
func ResolveVoterKey(sessionID string, isAnonymous bool, anonymousToken string) (string, error) {
	if isAnonymous {
		if anonymousToken == "" {
			return "", ErrMissingAnonymousToken
		}
		return anonymousToken, nil
	}

	if sessionID == "" {
		return "", ErrMissingSessionID
	}
	return sessionID, nil
}

// GenerateSessionID creates a random secure session identifier
// This is minted at the transport boundary when a caller arrives without one
func GenerateSessionID() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}
