// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Bethune7436/N-private-poll-locker/auth"
	"github.com/Bethune7436/N-private-poll-locker/cliparse"
	"github.com/Bethune7436/N-private-poll-locker/engine"
	"github.com/Bethune7436/N-private-poll-locker/middleware"
	"github.com/Bethune7436/N-private-poll-locker/models"
	"github.com/Bethune7436/N-private-poll-locker/tally"
)

type VotingHandler struct {
	eng *engine.Engine
	cfg cliparse.Config
}

func NewVotingHandler(eng *engine.Engine, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{eng: eng, cfg: cfg}
}

// Vote handles POST /polls/{id}/votes
// The ballot is an encryption of one under the election public key; the
// server folds it into the chosen option's counter without decrypting it.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
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

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ballot, err := tally.FromHex(req.Ballot)
	if err != nil {
		middleware.EngineError(w, engine.ErrInvalidBallot)
		return
	}

	if err := h.eng.Vote(r.Context(), pollID, req.OptionIndex, ballot, caller); err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		PollID:  pollID,
		Message: "Ballot accepted",
	})
}

// HasVoted handles GET /polls/{id}/voters/{address}
func (h *VotingHandler) HasVoted(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll id")
		return
	}
	address := r.PathValue("address")
	if address == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address is required")
		return
	}

	voted, err := h.eng.HasVoted(r.Context(), pollID, address)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HasVotedResponse{
		PollID:   pollID,
		Address:  address,
		HasVoted: voted,
	})
}

// GetTotalVoters handles GET /polls/{id}/voters
func (h *VotingHandler) GetTotalVoters(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	total, err := h.eng.TotalVoters(r.Context(), pollID)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TotalVotersResponse{
		PollID:      pollID,
		TotalVoters: total,
	})
}

// GetStats handles GET /polls/{id}/stats
func (h *VotingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	stats, err := h.eng.Stats(r.Context(), pollID)
	if err != nil {
		middleware.EngineError(w, err)
		return
	}

	resp := models.VotingStatsResponse{
		PollID:        pollID,
		TotalVoters:   stats.TotalVoters,
		IsActive:      stats.IsActive,
		TimeRemaining: stats.TimeRemaining,
	}
	if stats.IsActive {
		resp.ClosesIn = humanize.Time(time.Unix(stats.EndTime, 0))
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetPublicKey handles GET /crypto/public-key
// Clients encrypt their unit ballots under this key before submitting.
func (h *VotingHandler) GetPublicKey(w http.ResponseWriter, r *http.Request) {
	pub := h.eng.PublicKey()
	middleware.JSONResponse(w, http.StatusOK, models.PublicKeyResponse{
		Length: pub.N.BitLen(),
		N:      pub.N.Text(16),
	})
}
