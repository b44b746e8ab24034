// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine is the confidential poll core: registry, lifecycle state
machine, voter ledger, encrypted tally accumulation, and the finalization
handshake with the decryption oracle.

# Lifecycle

A poll moves pending → active → ended purely by time passing; the phase is
recomputed from the clock on every access (see PollPhase) and never stored.
The only explicit transition is into the terminal finalized state, reached
either by the oracle's decryption callback or by the creator's emergency
pause. Once finalized, a poll is read-only forever.

# Concurrency

Every mutating operation takes a per-poll mutex for its whole
check-then-act sequence and runs its writes in one SQL transaction. That
makes the double-vote check, the finalization flags, and the homomorphic
read-modify-write on the counters race-free without database-specific
locking. Reads go straight to the database.

# Confidentiality

Per-option counts exist only as Paillier ciphertexts (package tally) from
creation until the decryption callback delivers plaintext. The engine never
holds a private key, never logs an option index on the vote path, and
exposes ciphertexts only through EncryptedCounts, which returns them as-is.

# Finalization handshake

RequestFinalization flips the poll to decryption_pending, stores a fresh
request id, and dispatches the ciphertexts through a Dispatcher. The
matching OnDecryptionResult call may arrive arbitrarily later; it is
idempotent against duplicates and rejects anything not matching the single
in-flight request id. There is no timeout on a pending request - a silent
oracle can only be escaped via EmergencyPause, which forfeits the results.
*/
package engine
