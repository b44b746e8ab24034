// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/Bethune7436/N-private-poll-locker/auth"
	"github.com/Bethune7436/N-private-poll-locker/cliparse"
	"github.com/Bethune7436/N-private-poll-locker/engine"
	"github.com/Bethune7436/N-private-poll-locker/middleware"
	"github.com/Bethune7436/N-private-poll-locker/models"
)

type OracleHandler struct {
	eng *engine.Engine
	cfg cliparse.Config
}

func NewOracleHandler(eng *engine.Engine, cfg cliparse.Config) *OracleHandler {
	return &OracleHandler{eng: eng, cfg: cfg}
}

// DecryptionResult handles POST /polls/{id}/decryption-result
// Oracle-only: the X-Oracle-Key header must be the HMAC issued for exactly
// this poll and request id at dispatch time, so ordinary callers and
// replayed callbacks are rejected before the engine is touched. The engine
// then re-checks the request id against the single in-flight request.
func (h *OracleHandler) DecryptionResult(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	var req models.DecryptionResultRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.RequestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "request_id is required")
		return
	}

	key := r.Header.Get(auth.OracleKeyHeader)
	if err := auth.ValidateOracleKey(pollID, req.RequestID, key, h.cfg.OracleKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid oracle key")
		return
	}

	if err := h.eng.OnDecryptionResult(r.Context(), pollID, req.RequestID, req.Counts); err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Results committed",
	})
}
