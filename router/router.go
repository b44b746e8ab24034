// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/Bethune7436/N-private-poll-locker/cliparse"
	"github.com/Bethune7436/N-private-poll-locker/engine"
	"github.com/Bethune7436/N-private-poll-locker/handlers"
	"github.com/Bethune7436/N-private-poll-locker/middleware"
)

func NewRouter(eng *engine.Engine, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(eng, cfg)
	votingHandler := handlers.NewVotingHandler(eng, cfg)
	resultsHandler := handlers.NewResultsHandler(eng, cfg)
	oracleHandler := handlers.NewOracleHandler(eng, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll registry
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/count", middleware.WithLogging(pollHandler.GetPollCount))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPollInfo))
	mux.HandleFunc("GET /polls/{id}/creator", middleware.WithLogging(pollHandler.GetPollCreator))

	// Voting (active phase)
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(votingHandler.Vote))
	mux.HandleFunc("GET /polls/{id}/voters", middleware.WithLogging(votingHandler.GetTotalVoters))
	mux.HandleFunc("GET /polls/{id}/voters/{address}", middleware.WithLogging(votingHandler.HasVoted))
	mux.HandleFunc("GET /polls/{id}/stats", middleware.WithLogging(votingHandler.GetStats))
	mux.HandleFunc("GET /crypto/public-key", middleware.WithLogging(votingHandler.GetPublicKey))

	// Finalization and results
	mux.HandleFunc("GET /polls/{id}/tally", middleware.WithLogging(resultsHandler.GetEncryptedTally))
	mux.HandleFunc("POST /polls/{id}/finalize", middleware.WithLogging(resultsHandler.RequestFinalization))
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Oracle callback and creator override
	mux.HandleFunc("POST /polls/{id}/decryption-result", middleware.WithLogging(oracleHandler.DecryptionResult))
	mux.HandleFunc("POST /polls/{id}/pause", middleware.WithLogging(pollHandler.EmergencyPause))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("poll-locker API v1"))
	})

	return mux
}
