// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Bethune7436/N-private-poll-locker/tally"
)

// DecryptRequest is what the engine hands to the decryption service when a
// poll is finalized: the poll's ciphertext tally and the request id the
// callback must echo.
type DecryptRequest struct {
	PollID      int64
	RequestID   string
	Ciphertexts []tally.Ciphertext
}

// Dispatcher delivers decrypt requests to the threshold-decryption service.
// Dispatch must not block waiting for the oracle's answer; the plaintext
// comes back later through OnDecryptionResult as an independent call.
type Dispatcher interface {
	Dispatch(ctx context.Context, req DecryptRequest) error
}

// RequestFinalization starts the decrypt-on-finalize handshake for an
// ended poll. Any caller may request it. On success the poll is left in
// decryption_pending with a fresh request id, and the tally is dispatched
// to the oracle.
//
// There is no timeout on a pending request: if the oracle never answers,
// the poll stays pending until the creator forfeits via EmergencyPause.
func (e *Engine) RequestFinalization(ctx context.Context, pollID int64) error {
	unlock := e.lockPoll(pollID)
	defer unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := getPoll(ctx, tx, pollID)
	if err != nil {
		return err
	}
	if p.Finalized {
		return ErrAlreadyFinalized
	}
	if PollPhase(time.Now(), p.StartTime, p.EndTime, p.Finalized) != PhaseEnded {
		return ErrVotingStillOpen
	}
	if p.DecryptionPending {
		return ErrFinalizationAlreadyPending
	}

	requestID := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		UPDATE poll SET decryption_pending = 1, decryption_request_id = $1
		WHERE id = $2
	`, requestID, pollID)
	if err != nil {
		return fmt.Errorf("failed to mark poll pending: %w", err)
	}

	cts, err := optionCiphertexts(ctx, tx, pollID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit finalization request: %w", err)
	}

	// The pending flag is already committed; a dispatch failure leaves the
	// poll stuck pending, which only an oracle resend or an emergency pause
	// resolves. That matches the protocol's no-auto-retry rule, so the
	// error is logged rather than surfaced to the caller.
	if err := e.dec.Dispatch(ctx, DecryptRequest{
		PollID:      pollID,
		RequestID:   requestID,
		Ciphertexts: cts,
	}); err != nil {
		slog.Error("decryption dispatch failed", "poll_id", pollID, "request_id", requestID, "error", err)
	} else {
		slog.Info("decryption requested", "poll_id", pollID, "request_id", requestID)
	}
	return nil
}

// OnDecryptionResult commits the oracle's plaintext counts and flips the
// poll to finalized. Only a callback matching the single in-flight request
// id is accepted; anything else - duplicate delivery, a superseded request,
// a poll that was never pending - fails ErrUnknownRequest with no state
// change. A count sequence of the wrong length fails ErrResultShapeMismatch
// and leaves the poll pending so the oracle can resend a corrected result.
func (e *Engine) OnDecryptionResult(ctx context.Context, pollID int64, requestID string, counts []uint64) error {
	unlock := e.lockPoll(pollID)
	defer unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := getPoll(ctx, tx, pollID)
	if err == ErrPollNotFound {
		return ErrUnknownRequest
	}
	if err != nil {
		return err
	}
	if !p.DecryptionPending || !p.RequestID.Valid || p.RequestID.String != requestID {
		return ErrUnknownRequest
	}

	n, err := optionCount(ctx, tx, pollID)
	if err != nil {
		return err
	}
	if len(counts) != n {
		return ErrResultShapeMismatch
	}

	resultsJSON, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE poll
		SET results = $1, finalized = 1, decryption_pending = 0,
		    decryption_request_id = NULL
		WHERE id = $2
	`, string(resultsJSON), pollID)
	if err != nil {
		return fmt.Errorf("failed to store results: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}

	slog.Info("poll finalized", "poll_id", pollID, "request_id", requestID, "total_voters", p.TotalVoters)
	return nil
}

// Results returns the plaintext counts, aligned with the option order.
// Available only after finalization through the decryption path; a poll
// finalized by emergency pause never has results.
func (e *Engine) Results(ctx context.Context, pollID int64) ([]uint64, error) {
	p, err := getPoll(ctx, e.db, pollID)
	if err != nil {
		return nil, err
	}
	if !p.Finalized || !p.Results.Valid {
		return nil, ErrResultsNotAvailable
	}

	var counts []uint64
	if err := json.Unmarshal([]byte(p.Results.String), &counts); err != nil {
		return nil, fmt.Errorf("stored results corrupt for poll %d: %w", pollID, err)
	}
	return counts, nil
}

// EmergencyPause force-finalizes a poll without decryption. Creator-only.
// It clears any in-flight decryption request and forfeits the results
// forever - the tally stays encrypted.
func (e *Engine) EmergencyPause(ctx context.Context, pollID int64, caller string) error {
	if caller == "" {
		return ErrUnauthorized
	}

	unlock := e.lockPoll(pollID)
	defer unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := getPoll(ctx, tx, pollID)
	if err != nil {
		return err
	}
	if p.Creator != caller {
		return ErrUnauthorized
	}
	if p.Finalized {
		return ErrAlreadyFinalized
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE poll
		SET finalized = 1, decryption_pending = 0, decryption_request_id = NULL
		WHERE id = $1
	`, pollID)
	if err != nil {
		return fmt.Errorf("failed to pause poll: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit pause: %w", err)
	}

	slog.Warn("poll emergency paused", "poll_id", pollID, "creator", caller)
	return nil
}
