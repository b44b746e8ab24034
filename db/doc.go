// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the SQL schema for the poll engine.

Three tables:

  - poll: one row per poll, sequential 0-based id, lifecycle flags, and the
    plaintext results column (NULL until a decryption callback lands).
  - poll_option: ordered option labels and their encrypted counters.
  - voter: the per-poll append-only voter ledger.

The schema is written for both Postgres and SQLite. Call CreateSchema at
startup; it is idempotent.
*/
package db
