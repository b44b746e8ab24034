// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/Bethune7436/N-private-poll-locker/tally"
)

// Engine is the poll core: registry, lifecycle gates, voter ledger,
// encrypted tally, and the finalization handshake. It is transport-free;
// the HTTP handlers are a thin layer on top.
//
// Every mutating operation runs under a per-poll mutex plus a SQL
// transaction, so check-then-act sequences (the AlreadyVoted guard, the
// finalization flags) are serialized per poll without relying on the
// database's locking dialect.
type Engine struct {
	db  *sql.DB
	pub *tally.PublicKey
	dec Dispatcher

	mu    sync.Mutex // guards locks and poll id allocation
	locks map[int64]*sync.Mutex
}

// New builds an engine over db. pub encrypts the zero counters at poll
// creation; dec receives decryption requests at finalization.
func New(db *sql.DB, pub *tally.PublicKey, dec Dispatcher) *Engine {
	return &Engine{
		db:    db,
		pub:   pub,
		dec:   dec,
		locks: make(map[int64]*sync.Mutex),
	}
}

// PublicKey returns the election public key clients encrypt ballots under.
func (e *Engine) PublicKey() *tally.PublicKey {
	return e.pub
}

// lockPoll serializes all mutating operations against one poll. The
// returned func releases the lock.
func (e *Engine) lockPoll(id int64) func() {
	e.mu.Lock()
	m, ok := e.locks[id]
	if !ok {
		m = &sync.Mutex{}
		e.locks[id] = m
	}
	e.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// pollRow mirrors one row of the poll table.
type pollRow struct {
	ID                int64
	Title             string
	Creator           string
	StartTime         int64
	EndTime           int64
	Finalized         bool
	DecryptionPending bool
	RequestID         sql.NullString
	TotalVoters       int64
	Results           sql.NullString
	CreatedAt         int64
}

func getPoll(ctx context.Context, q querier, id int64) (*pollRow, error) {
	var p pollRow
	var finalized, pending int64
	err := q.QueryRowContext(ctx, `
		SELECT id, title, creator, start_time, end_time, finalized,
		       decryption_pending, decryption_request_id, total_voters,
		       results, created_at
		FROM poll
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Title, &p.Creator, &p.StartTime, &p.EndTime, &finalized,
		&pending, &p.RequestID, &p.TotalVoters, &p.Results, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load poll: %w", err)
	}
	p.Finalized = finalized != 0
	p.DecryptionPending = pending != 0
	return &p, nil
}

func optionCount(ctx context.Context, q querier, pollID int64) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM poll_option WHERE poll_id = $1
	`, pollID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count options: %w", err)
	}
	return n, nil
}

func optionLabels(ctx context.Context, q querier, pollID int64) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT label FROM poll_option WHERE poll_id = $1 ORDER BY idx
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

func optionCiphertexts(ctx context.Context, q querier, pollID int64) ([]tally.Ciphertext, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT tally FROM poll_option WHERE poll_id = $1 ORDER BY idx
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tally: %w", err)
	}
	defer rows.Close()

	cts := []tally.Ciphertext{}
	for rows.Next() {
		var hexCT string
		if err := rows.Scan(&hexCT); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		ct, err := tally.FromHex(hexCT)
		if err != nil {
			return nil, fmt.Errorf("stored ciphertext corrupt for poll %d: %w", pollID, err)
		}
		cts = append(cts, ct)
	}
	return cts, rows.Err()
}
