// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "errors"

// Every guard in the engine fails with one of these sentinels. Handlers
// translate them to HTTP statuses with errors.Is; none of them carries
// dynamic state, so a failed call leaves the poll untouched.
var (
	// Validation failures - caller-side, rejected before any write.
	ErrInvalidTitle       = errors.New("poll title must be non-empty")
	ErrInvalidOptionCount = errors.New("polls require 2 to 16 non-empty options")
	ErrInvalidWindow      = errors.New("poll start time must precede end time")
	ErrInvalidOption      = errors.New("option index out of range")
	ErrInvalidBallot      = errors.New("ballot ciphertext is empty or malformed")

	// State guards - the poll exists but is in the wrong phase.
	ErrVotingNotOpen              = errors.New("voting is not open")
	ErrVotingStillOpen            = errors.New("voting window has not ended")
	ErrAlreadyFinalized           = errors.New("poll is already finalized")
	ErrFinalizationAlreadyPending = errors.New("a decryption request is already in flight")
	ErrAlreadyVoted               = errors.New("caller has already voted in this poll")

	// Lookup and authorization.
	ErrPollNotFound = errors.New("poll not found")
	ErrUnauthorized = errors.New("caller is not authorized")

	// Oracle protocol - stale, duplicate, or malformed callbacks.
	ErrUnknownRequest      = errors.New("no pending decryption request matches")
	ErrResultShapeMismatch = errors.New("decrypted count sequence does not match option count")

	// Availability.
	ErrResultsNotAvailable = errors.New("results are not available")
)
