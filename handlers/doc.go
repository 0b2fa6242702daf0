// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the LivePoll API.

# Handler Types

Each handler is a struct built over the injected service:

  - PollHandler: poll creation and read projections
  - VotingHandler: vote submission
  - SessionHandler: session bootstrap

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(svc)

# Routes

	POST /polls            → CreatePoll
	GET  /polls            → ListPolls (per-caller user_has_voted)
	GET  /polls/{id}       → GetPoll (results gated on having voted)
	POST /polls/{id}/votes → Vote
	GET  /session          → Bootstrap

# Error Mapping

Handlers translate service outcomes to HTTP:

  - validation errors → 400
  - unknown poll on GET → 404
  - expected vote rejections → 200 with {success:false, message}
  - storage faults → 500

The 200-with-failure shape for vote rejections is deliberate: the UI
renders the message inline instead of an error page.
*/
package handlers
