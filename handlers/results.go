// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/Bethune7436/N-private-poll-locker/cliparse"
	"github.com/Bethune7436/N-private-poll-locker/engine"
	"github.com/Bethune7436/N-private-poll-locker/middleware"
	"github.com/Bethune7436/N-private-poll-locker/models"
)

type ResultsHandler struct {
	eng *engine.Engine
	cfg cliparse.Config
}

func NewResultsHandler(eng *engine.Engine, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{eng: eng, cfg: cfg}
}

// GetEncryptedTally handles GET /polls/{id}/tally
// Returns the raw per-option ciphertexts. These are opaque to everyone but
// the decryption oracle; exposing them reveals nothing about the counts.
func (h *ResultsHandler) GetEncryptedTally(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	cts, err := h.eng.EncryptedCounts(r.Context(), pollID)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	hexCTs := make([]string, len(cts))
	for i, ct := range cts {
		hexCTs[i] = ct.Hex()
	}

	middleware.JSONResponse(w, http.StatusOK, models.EncryptedTallyResponse{
		PollID:      pollID,
		Ciphertexts: hexCTs,
	})
}

// RequestFinalization handles POST /polls/{id}/finalize
// Open to any caller once the voting window has ended. The response only
// acknowledges that decryption was requested; results arrive whenever the
// oracle calls back.
func (h *ResultsHandler) RequestFinalization(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	if err := h.eng.RequestFinalization(r.Context(), pollID); err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusAccepted, models.FinalizeResponse{
		PollID:  pollID,
		Status:  "pending",
		Message: "Decryption requested; results will be published when the oracle responds",
	})
}

// GetResults handles GET /polls/{id}/results
// Available only after the decryption callback has landed; a paused poll
// never has results.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	results, err := h.eng.Results(r.Context(), pollID)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	total, err := h.eng.TotalVoters(r.Context(), pollID)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		PollID:      pollID,
		Results:     results,
		TotalVoters: total,
	})
}
