// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: request/completion logging with duration
  - WithSession: guarantees a session identifier (header, cookie, or
    freshly minted) before the handler runs
  - CORS: cross-origin headers and preflight handling

# Session Resolution

WithSession resolves in order: X-Session-ID header, session_id cookie,
then a generated identifier set as a cookie. Handlers read the result
via SessionID(r); SessionIsNew(r) reports whether it was minted on this
request. AnonymousID(r) exposes the optional X-Anonymous-ID header for
read endpoints.

# Helpers

  - JSONResponse: writes a JSON response with status code
  - ErrorResponse: writes a models.ErrorResponse
  - ParseJSONBody: decodes a JSON request body
  - GetClientIP: client IP from X-Forwarded-For, X-Real-IP, RemoteAddr
*/
package middleware
