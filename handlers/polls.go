// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/Bethune7436/N-private-poll-locker/auth"
	"github.com/Bethune7436/N-private-poll-locker/cliparse"
	"github.com/Bethune7436/N-private-poll-locker/engine"
	"github.com/Bethune7436/N-private-poll-locker/middleware"
	"github.com/Bethune7436/N-private-poll-locker/models"
)

type PollHandler struct {
	eng *engine.Engine
	cfg cliparse.Config
}

func NewPollHandler(eng *engine.Engine, cfg cliparse.Config) *PollHandler {
	return &PollHandler{eng: eng, cfg: cfg}
}

// parsePollID extracts the {id} path segment as an int64.
func parsePollID(r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CallerAddress(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pollID, err := h.eng.CreatePoll(r.Context(), req.Title, req.Options, req.StartTime, req.EndTime, caller)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID: pollID,
	})
}

// GetPollCount handles GET /polls/count
func (h *PollHandler) GetPollCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.eng.PollCount(r.Context())
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollCountResponse{Count: count})
}

// GetPollInfo handles GET /polls/{id}
func (h *PollHandler) GetPollInfo(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	poll, err := h.eng.PollInfo(r.Context(), pollID)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// GetPollCreator handles GET /polls/{id}/creator
func (h *PollHandler) GetPollCreator(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	creator, err := h.eng.PollCreator(r.Context(), pollID)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollCreatorResponse{
		PollID:  pollID,
		Creator: creator,
	})
}

// EmergencyPause handles POST /polls/{id}/pause
// Creator-only: force-finalizes the poll without decryption, forfeiting the
// results forever.
func (h *PollHandler) EmergencyPause(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	caller, err := auth.CallerAddress(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.eng.EmergencyPause(r.Context(), pollID, caller); err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PauseResponse{
		PollID:  pollID,
		Message: "Poll paused; tally will remain encrypted",
	})
}
