// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the poll engine.

# Handler Types

Each handler is a struct with engine and config dependencies:

  - PollHandler: poll creation, metadata reads, emergency pause
  - VotingHandler: ballot admission, voter queries, voting stats, public key
  - ResultsHandler: encrypted tally, finalization request, plaintext results
  - OracleHandler: the decryption callback (oracle-only)

Handlers are created via constructor functions that accept *engine.Engine
and Config:

	pollHandler := handlers.NewPollHandler(eng, cfg)

# Poll Lifecycle

Polls move pending → active → ended by time alone, then into the terminal
finalized state via decryption or pause:

	POST /polls                  → CreatePoll (X-Caller-Address)
	POST /polls/{id}/votes       → Vote (active phase; one per caller)
	POST /polls/{id}/finalize    → RequestFinalization (ended phase)
	POST /polls/{id}/decryption-result → DecryptionResult (X-Oracle-Key)
	POST /polls/{id}/pause       → EmergencyPause (creator only)

# Confidentiality

Ballots arrive as Paillier ciphertexts and are accumulated without
decryption; nothing in this package (responses or logs) reveals which
option a caller picked, only that they voted. Plaintext counts exist only
after the oracle's callback, via GET /polls/{id}/results.
*/
package handlers
