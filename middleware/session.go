// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"

	"github.com/danielhkuo/livepoll/identity"
)

const (
	// SessionHeader lets API clients carry their session explicitly.
	SessionHeader = "X-Session-ID"
	// SessionCookie is set for browser clients that don't manage headers.
	SessionCookie = "session_id"
	// AnonymousHeader carries the caller's anonymous token, if any, so
	// read endpoints can recognize an anonymous voter.
	AnonymousHeader = "X-Anonymous-ID"
)

type sessionCtxKey struct{}

type sessionInfo struct {
	id    string
	isNew bool
}

// WithSession guarantees downstream handlers a session identifier:
// taken from the X-Session-ID header, then the session cookie, and
// minted (plus set as a cookie) when the caller arrives with neither.
// The identifier is an opaque bearer value, not an authenticated
// identity.
func WithSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := sessionInfo{id: r.Header.Get(SessionHeader)}

		if info.id == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				info.id = c.Value
			}
		}

		if info.id == "" {
			id, err := identity.GenerateSessionID()
			if err != nil {
				ErrorResponse(w, http.StatusInternalServerError, "Failed to establish session")
				return
			}
			info.id = id
			info.isNew = true
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, info)
		next(w, r.WithContext(ctx))
	}
}

// SessionID returns the session identifier established by WithSession,
// or "" if the handler was not wrapped.
func SessionID(r *http.Request) string {
	info, _ := r.Context().Value(sessionCtxKey{}).(sessionInfo)
	return info.id
}

// SessionIsNew reports whether WithSession minted the session on this
// request rather than receiving it from the client.
func SessionIsNew(r *http.Request) bool {
	info, _ := r.Context().Value(sessionCtxKey{}).(sessionInfo)
	return info.isNew
}

// AnonymousID returns the caller-supplied anonymous token, or "".
func AnonymousID(r *http.Request) string {
	return r.Header.Get(AnonymousHeader)
}
