// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Bethune7436/N-private-poll-locker/tally"
)

// VotingStats is the public voting snapshot for one poll.
type VotingStats struct {
	TotalVoters   int64
	IsActive      bool
	TimeRemaining int64 // seconds until end_time; 0 unless active
	EndTime       int64
}

// Vote admits one encrypted ballot from caller. Admission checks run in a
// fixed order - existence, phase, option bounds, double-vote - and the
// check-then-record sequence is atomic per poll: the per-poll mutex plus
// the enclosing transaction rule out a caller slipping two ballots past
// the AlreadyVoted guard concurrently.
//
// The ballot is folded into the option's encrypted counter without ever
// being decrypted, and nothing about the chosen option is logged.
func (e *Engine) Vote(ctx context.Context, pollID int64, optionIndex int, ballot tally.Ciphertext, caller string) error {
	if caller == "" {
		return ErrUnauthorized
	}
	if len(ballot) == 0 {
		// An empty ciphertext decodes to zero, and multiplying any Paillier
		// ciphertext by zero destroys the counter. Reject before touching
		// the tally.
		return ErrInvalidBallot
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

	if PollPhase(time.Now(), p.StartTime, p.EndTime, p.Finalized) != PhaseActive {
		return ErrVotingNotOpen
	}

	n, err := optionCount(ctx, tx, pollID)
	if err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= n {
		return ErrInvalidOption
	}

	var voted int64
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM voter WHERE poll_id = $1 AND address = $2
	`, pollID, caller).Scan(&voted)
	if err != nil {
		return fmt.Errorf("failed to check voter ledger: %w", err)
	}
	if voted > 0 {
		return ErrAlreadyVoted
	}

	var curHex string
	err = tx.QueryRowContext(ctx, `
		SELECT tally FROM poll_option WHERE poll_id = $1 AND idx = $2
	`, pollID, optionIndex).Scan(&curHex)
	if err != nil {
		return fmt.Errorf("failed to load counter: %w", err)
	}
	cur, err := tally.FromHex(curHex)
	if err != nil {
		return fmt.Errorf("stored ciphertext corrupt for poll %d: %w", pollID, err)
	}

	sum := tally.Add(e.pub, cur, ballot)
	_, err = tx.ExecContext(ctx, `
		UPDATE poll_option SET tally = $1 WHERE poll_id = $2 AND idx = $3
	`, sum.Hex(), pollID, optionIndex)
	if err != nil {
		return fmt.Errorf("failed to store counter: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO voter (poll_id, address, voted_at) VALUES ($1, $2, $3)
	`, pollID, caller, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record voter: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE poll SET total_voters = total_voters + 1 WHERE id = $1
	`, pollID)
	if err != nil {
		return fmt.Errorf("failed to bump voter count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}

	// Deliberately no option index here.
	slog.Info("ballot accepted", "poll_id", pollID, "voter", caller)
	return nil
}

// HasVoted reports whether address already cast a ballot in the poll.
func (e *Engine) HasVoted(ctx context.Context, pollID int64, address string) (bool, error) {
	if _, err := getPoll(ctx, e.db, pollID); err != nil {
		return false, err
	}
	var n int64
	err := e.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM voter WHERE poll_id = $1 AND address = $2
	`, pollID, address).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check voter ledger: %w", err)
	}
	return n > 0, nil
}

// TotalVoters returns the number of distinct voters admitted so far.
func (e *Engine) TotalVoters(ctx context.Context, pollID int64) (int64, error) {
	p, err := getPoll(ctx, e.db, pollID)
	if err != nil {
		return 0, err
	}
	return p.TotalVoters, nil
}

// Stats returns the voting snapshot: voter count, whether the poll is
// currently accepting ballots, and the seconds remaining in the window.
func (e *Engine) Stats(ctx context.Context, pollID int64) (*VotingStats, error) {
	p, err := getPoll(ctx, e.db, pollID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &VotingStats{
		TotalVoters: p.TotalVoters,
		EndTime:     p.EndTime,
	}
	if PollPhase(now, p.StartTime, p.EndTime, p.Finalized) == PhaseActive {
		s.IsActive = true
		if remaining := p.EndTime - now.Unix(); remaining > 0 {
			s.TimeRemaining = remaining
		}
	}
	return s, nil
}

// EncryptedCounts returns the raw per-option ciphertexts for off-path use
// such as mirroring or auditing. It never decrypts anything.
func (e *Engine) EncryptedCounts(ctx context.Context, pollID int64) ([]tally.Ciphertext, error) {
	if _, err := getPoll(ctx, e.db, pollID); err != nil {
		return nil, err
	}
	return optionCiphertexts(ctx, e.db, pollID)
}
