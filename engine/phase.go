// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "time"

// Phase is a poll's lifecycle state. It is never stored: recomputing it
// from the clock on every access means a poll can never miss a transition.
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseActive    Phase = "active"
	PhaseEnded     Phase = "ended"
	PhaseFinalized Phase = "finalized"
)

// PollPhase derives the phase from the clock and the poll's stored fields.
// Finalized wins over everything; the time-driven transitions pending →
// active → ended happen purely by time passing.
func PollPhase(now time.Time, startTime, endTime int64, finalized bool) Phase {
	switch {
	case finalized:
		return PhaseFinalized
	case now.Unix() < startTime:
		return PhasePending
	case now.Unix() < endTime:
		return PhaseActive
	default:
		return PhaseEnded
	}
}

func (p Phase) String() string {
	return string(p)
}
