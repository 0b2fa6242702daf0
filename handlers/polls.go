// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/service"
	"github.com/danielhkuo/livepoll/store"
)

type PollHandler struct {
	svc *service.Service
}

func NewPollHandler(svc *service.Service) *PollHandler {
	return &PollHandler{svc: svc}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	detail, err := h.svc.CreatePoll(req)
	if err != nil {
		if isValidationError(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, detail)
}

// ListPolls handles GET /polls
// Summaries carry the caller's voted status, so the list is wrapped in
// session middleware even though it mutates nothing.
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	caller := service.Caller{
		SessionID:   middleware.SessionID(r),
		AnonymousID: middleware.AnonymousID(r),
	}

	summaries, err := h.svc.ListPolls(caller)
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// GetPoll handles GET /polls/{id}
// The results breakdown is present only when the caller has voted.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	caller := service.Caller{
		SessionID:   middleware.SessionID(r),
		AnonymousID: middleware.AnonymousID(r),
	}

	detail, err := h.svc.GetPoll(pollID, caller)
	if errors.Is(err, store.ErrPollNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to get poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrTitleRequired) ||
		errors.Is(err, service.ErrTooFewOptions) ||
		errors.Is(err, service.ErrEmptyOption) ||
		errors.Is(err, service.ErrDuplicateOption)
}
