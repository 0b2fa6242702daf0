// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/livepoll/handlers"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/service"
)

func NewRouter(svc *service.Service) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(svc)
	votingHandler := handlers.NewVotingHandler(svc)
	sessionHandler := handlers.NewSessionHandler()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session bootstrap
	mux.HandleFunc("GET /session", middleware.WithLogging(middleware.WithSession(sessionHandler.Bootstrap)))

	// Poll operations
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(middleware.WithSession(pollHandler.ListPolls)))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(middleware.WithSession(pollHandler.GetPoll)))

	// Voting
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(middleware.WithSession(votingHandler.Vote)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livepoll API v1"))
	})

	return mux
}
