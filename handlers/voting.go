// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/service"
)

type VotingHandler struct {
	svc *service.Service
}

func NewVotingHandler(svc *service.Service) *VotingHandler {
	return &VotingHandler{svc: svc}
}

// Vote handles POST /polls/{id}/votes
//
// Expected rejections (already voted, unknown poll or option, missing
// anonymous token) come back as 200 with success=false so the UI can
// show the message inline; only malformed input and storage faults map
// to HTTP error codes.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.OptionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id is required")
		return
	}

	resp, err := h.svc.Vote(pollID, req, middleware.SessionID(r))
	if err != nil {
		slog.Error("vote attempt failed", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
