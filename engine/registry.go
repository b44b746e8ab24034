// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Bethune7436/N-private-poll-locker/models"
	"github.com/Bethune7436/N-private-poll-locker/tally"
)

// Option count bounds for a poll.
const (
	MinOptions = 2
	MaxOptions = 16
)

// CreatePoll validates and registers a new poll, returning its sequential
// id. The tally starts as a fresh encryption of zero per option, so even an
// untouched poll exposes no distinguishable ciphertexts.
func (e *Engine) CreatePoll(ctx context.Context, title string, options []string, startTime, endTime int64, creator string) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, ErrInvalidTitle
	}
	if len(options) < MinOptions || len(options) > MaxOptions {
		return 0, ErrInvalidOptionCount
	}
	for _, label := range options {
		if strings.TrimSpace(label) == "" {
			return 0, ErrInvalidOptionCount
		}
	}
	if startTime >= endTime {
		return 0, ErrInvalidWindow
	}
	if creator == "" {
		return 0, ErrUnauthorized
	}

	// Encrypt the zero counters before taking the allocation lock; Paillier
	// encryption is the slow part of creation.
	zeros := make([]tally.Ciphertext, len(options))
	for i := range options {
		z, err := tally.Zero(e.pub)
		if err != nil {
			return 0, err
		}
		zeros[i] = z
	}

	// e.mu serializes id allocation so two creations cannot race to the
	// same MAX(id)+1.
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id)+1, 0) FROM poll`).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to allocate poll id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, title, creator, start_time, end_time,
		                  finalized, decryption_pending, total_voters, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, 0, 0, $6)
	`, id, title, creator, startTime, endTime, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert poll: %w", err)
	}

	for i, label := range options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (poll_id, idx, label, tally)
			VALUES ($1, $2, $3, $4)
		`, id, i, label, zeros[i].Hex())
		if err != nil {
			return 0, fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit poll: %w", err)
	}

	slog.Info("poll created", "poll_id", id, "creator", creator, "option_count", len(options))
	return id, nil
}

// PollCount returns the number of polls ever created. Ids are dense, so
// every id in [0, count) resolves.
func (e *Engine) PollCount(ctx context.Context) (int64, error) {
	var n int64
	if err := e.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM poll`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count polls: %w", err)
	}
	return n, nil
}

// PollInfo returns the public view of a poll, with the phase computed at
// call time.
func (e *Engine) PollInfo(ctx context.Context, id int64) (*models.Poll, error) {
	p, err := getPoll(ctx, e.db, id)
	if err != nil {
		return nil, err
	}
	labels, err := optionLabels(ctx, e.db, id)
	if err != nil {
		return nil, err
	}

	return &models.Poll{
		ID:                p.ID,
		Title:             p.Title,
		Options:           labels,
		StartTime:         p.StartTime,
		EndTime:           p.EndTime,
		Creator:           p.Creator,
		Phase:             PollPhase(time.Now(), p.StartTime, p.EndTime, p.Finalized).String(),
		Finalized:         p.Finalized,
		DecryptionPending: p.DecryptionPending,
		TotalVoters:       p.TotalVoters,
		CreatedAt:         p.CreatedAt,
	}, nil
}

// PollCreator returns the identity that created the poll (and may pause it).
func (e *Engine) PollCreator(ctx context.Context, id int64) (string, error) {
	p, err := getPoll(ctx, e.db, id)
	if err != nil {
		return "", err
	}
	return p.Creator, nil
}
