package engine

import (
	"testing"
	"time"
)

func TestPollPhase(t *testing.T) {
	now := time.Unix(1000, 0)

	tests := []struct {
		name      string
		startTime int64
		endTime   int64
		finalized bool
		want      Phase
	}{
		{"before window", 2000, 3000, false, PhasePending},
		{"at start boundary", 1000, 3000, false, PhaseActive},
		{"inside window", 500, 3000, false, PhaseActive},
		{"at end boundary", 500, 1000, false, PhaseEnded},
		{"after window", 100, 500, false, PhaseEnded},
		{"finalized wins over active", 500, 3000, true, PhaseFinalized},
		{"finalized wins over pending", 2000, 3000, true, PhaseFinalized},
		{"finalized after end", 100, 500, true, PhaseFinalized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PollPhase(now, tt.startTime, tt.endTime, tt.finalized)
			if got != tt.want {
				t.Errorf("PollPhase() = %s, want %s", got, tt.want)
			}
		})
	}
}
