// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Bootstrap handles GET /session
// Returns the caller's session identifier, minting one when absent
// (the session middleware does the actual work and sets the cookie).
// Clients use this value as their named-voting key.
func (h *SessionHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		SessionID: middleware.SessionID(r),
		IsNew:     middleware.SessionIsNew(r),
	})
}
