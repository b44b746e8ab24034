// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Request types

type CreatePollRequest struct {
	Title     string   `json:"title"`
	Options   []string `json:"options"`
	StartTime int64    `json:"start_time"`
	EndTime   int64    `json:"end_time"`
}

type VoteRequest struct {
	OptionIndex int    `json:"option_index"`
	Ballot      string `json:"ballot"` // hex-encoded unit ciphertext
}

type DecryptionResultRequest struct {
	RequestID string   `json:"request_id"`
	Counts    []uint64 `json:"counts"`
}

// Response types

type CreatePollResponse struct {
	PollID int64 `json:"poll_id"`
}

type PollCountResponse struct {
	Count int64 `json:"count"`
}

type PollCreatorResponse struct {
	PollID  int64  `json:"poll_id"`
	Creator string `json:"creator"`
}

type VoteResponse struct {
	PollID  int64  `json:"poll_id"`
	Message string `json:"message"`
}

type HasVotedResponse struct {
	PollID   int64  `json:"poll_id"`
	Address  string `json:"address"`
	HasVoted bool   `json:"has_voted"`
}

type TotalVotersResponse struct {
	PollID      int64 `json:"poll_id"`
	TotalVoters int64 `json:"total_voters"`
}

type VotingStatsResponse struct {
	PollID        int64  `json:"poll_id"`
	TotalVoters   int64  `json:"total_voters"`
	IsActive      bool   `json:"is_active"`
	TimeRemaining int64  `json:"time_remaining"` // seconds; 0 unless active
	ClosesIn      string `json:"closes_in,omitempty"`
}

type EncryptedTallyResponse struct {
	PollID      int64    `json:"poll_id"`
	Ciphertexts []string `json:"ciphertexts"` // hex, aligned with options
}

type FinalizeResponse struct {
	PollID  int64  `json:"poll_id"`
	Status  string `json:"status"` // "pending" on success
	Message string `json:"message"`
}

type ResultsResponse struct {
	PollID      int64    `json:"poll_id"`
	Results     []uint64 `json:"results"` // aligned with options
	TotalVoters int64    `json:"total_voters"`
}

type PauseResponse struct {
	PollID  int64  `json:"poll_id"`
	Message string `json:"message"`
}

type PublicKeyResponse struct {
	Length int    `json:"length"`
	N      string `json:"n"` // hex
}

// Domain types

type Poll struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	Options           []string `json:"options"`
	StartTime         int64    `json:"start_time"`
	EndTime           int64    `json:"end_time"`
	Creator           string   `json:"creator"`
	Phase             string   `json:"phase"`
	Finalized         bool     `json:"finalized"`
	DecryptionPending bool     `json:"decryption_pending"`
	TotalVoters       int64    `json:"total_voters"`
	CreatedAt         int64    `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
