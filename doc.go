// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Poll Locker API server.

Poll Locker is a confidential multi-choice polling service. Ballots arrive
as Paillier ciphertexts, per-option tallies are combined homomorphically
while voting is open, and plaintext counts only exist after an external
decryption oracle finalizes an ended poll.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... ORACLE_KEY_SALT=... go run main.go -dev

Or with flags:

	go run main.go -p 3318 -t postgres -d "postgres://..." \
		-oracle https://oracle.internal/decrypt -public-key "$(cat pub.json)"

# Configuration

Required settings:

  - ORACLE_KEY_SALT (--oracle-salt): Secret for oracle callback key HMAC
  - ORACLE_URL (-oracle): Decryption oracle endpoint (unless -dev)
  - PAILLIER_PUBLIC_KEY (-public-key): Election public key JSON (unless -dev)

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): Connection string (default: in-memory SQLite)
  - DATABASE_TYPE (-t): "postgres" or "sqlite" (default: sqlite)
  - DEV_MODE (-dev): Generate a keypair and run an in-process oracle

# Architecture

The server uses a handler-based architecture with dependency injection:

  - engine: Poll lifecycle, ballot acceptance, finalization handshake
  - tally: Paillier ciphertext operations (no decryption surface)
  - oracle: Decrypt-request dispatchers (local dev and remote HTTP)
  - handlers: HTTP request handlers (polls, voting, results, oracle)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, error mapping
  - models: Request/response types
  - auth: Caller identity and oracle callback keys
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
