// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

NewRouter builds an http.ServeMux using Go 1.22+ method and path
patterns, wiring each route through the logging middleware and, for
every endpoint that cares who the caller is, the session middleware:

	mux := router.NewRouter(svc)

Routes:

	GET  /health           → liveness probe
	GET  /session          → session bootstrap
	POST /polls            → create a poll
	GET  /polls            → list polls (per-caller annotations)
	GET  /polls/{id}       → poll detail (gated results)
	POST /polls/{id}/votes → cast a vote
	GET  /                 → API banner
*/
package router
