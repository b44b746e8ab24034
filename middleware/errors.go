// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Bethune7436/N-private-poll-locker/engine"
	"github.com/Bethune7436/N-private-poll-locker/models"
)

// engineStatus maps every engine sentinel to its HTTP status and stable
// error code. The codes are the API contract; the statuses follow the
// usual split: validation 400, auth 403, lookup 404, state guards and
// availability 409, malformed oracle results 422.
var engineStatus = []struct {
	err    error
	status int
	code   string
}{
	{engine.ErrInvalidTitle, http.StatusBadRequest, "invalid_title"},
	{engine.ErrInvalidOptionCount, http.StatusBadRequest, "invalid_option_count"},
	{engine.ErrInvalidWindow, http.StatusBadRequest, "invalid_window"},
	{engine.ErrInvalidOption, http.StatusBadRequest, "invalid_option"},
	{engine.ErrInvalidBallot, http.StatusBadRequest, "invalid_ballot"},
	{engine.ErrVotingNotOpen, http.StatusConflict, "voting_not_open"},
	{engine.ErrVotingStillOpen, http.StatusConflict, "voting_still_open"},
	{engine.ErrAlreadyFinalized, http.StatusConflict, "already_finalized"},
	{engine.ErrFinalizationAlreadyPending, http.StatusConflict, "finalization_already_pending"},
	{engine.ErrAlreadyVoted, http.StatusConflict, "already_voted"},
	{engine.ErrPollNotFound, http.StatusNotFound, "poll_not_found"},
	{engine.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
	{engine.ErrUnknownRequest, http.StatusConflict, "unknown_request"},
	{engine.ErrResultShapeMismatch, http.StatusUnprocessableEntity, "result_shape_mismatch"},
	{engine.ErrResultsNotAvailable, http.StatusConflict, "results_not_available"},
}

// EngineError translates an engine failure into the JSON error shape.
// Unrecognized errors are treated as internal and their detail is kept out
// of the response body.
func EngineError(w http.ResponseWriter, err error) {
	for _, m := range engineStatus {
		if errors.Is(err, m.err) {
			JSONResponse(w, m.status, models.ErrorResponse{
				Error:   http.StatusText(m.status),
				Code:    m.code,
				Message: err.Error(),
			})
			return
		}
	}

	slog.Error("internal engine error", "error", err)
	ErrorResponse(w, http.StatusInternalServerError, "internal error")
}
