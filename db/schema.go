// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the engine.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The SQL sticks to the portable subset accepted by both Postgres (lib/pq)
// and SQLite (modernc.org/sqlite): flags are stored as 0/1 integers,
// ciphertexts as hex text, timestamps as unix seconds.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls. Rows are append-only: a poll is never deleted and its identity
-- fields (title, creator, window) are never updated after creation.
CREATE TABLE IF NOT EXISTS poll (
    id BIGINT PRIMARY KEY,
    title TEXT NOT NULL,
    creator TEXT NOT NULL,
    start_time BIGINT NOT NULL,
    end_time BIGINT NOT NULL,
    finalized BIGINT NOT NULL DEFAULT 0,
    decryption_pending BIGINT NOT NULL DEFAULT 0,
    decryption_request_id TEXT,
    total_voters BIGINT NOT NULL DEFAULT 0,
    results TEXT,
    created_at BIGINT NOT NULL
);

-- Options with their encrypted counters. tally holds a hex-encoded Paillier
-- ciphertext; only the vote path may replace it, and only with a homomorphic
-- sum of the previous value.
CREATE TABLE IF NOT EXISTS poll_option (
    poll_id BIGINT NOT NULL REFERENCES poll(id),
    idx BIGINT NOT NULL,
    label TEXT NOT NULL,
    tally TEXT NOT NULL,
    PRIMARY KEY (poll_id, idx)
);

-- Voter ledger. The primary key is the at-most-one-vote guarantee's last
-- line of defense under the engine's per-poll serialization.
CREATE TABLE IF NOT EXISTS voter (
    poll_id BIGINT NOT NULL REFERENCES poll(id),
    address TEXT NOT NULL,
    voted_at BIGINT NOT NULL,
    PRIMARY KEY (poll_id, address)
);

CREATE INDEX IF NOT EXISTS idx_voter_poll ON voter(poll_id);
`
