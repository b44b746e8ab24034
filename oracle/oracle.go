// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	paillier "github.com/roasbeef/go-go-gadget-paillier"

	"github.com/Bethune7436/N-private-poll-locker/auth"
	"github.com/Bethune7436/N-private-poll-locker/engine"
)

// DeliverFunc receives decrypted counts for a finalization request. In the
// running service it is engine.OnDecryptionResult.
type DeliverFunc func(ctx context.Context, pollID int64, requestID string, counts []uint64) error

// Local is a single-process stand-in for the threshold-decryption service,
// used for dev mode and tests. It holds the full private key (a real
// deployment never would) and delivers the callback asynchronously on its
// own goroutine, so the request/callback split behaves like the remote
// protocol.
type Local struct {
	priv    *paillier.PrivateKey
	deliver DeliverFunc
}

// NewLocal builds a local oracle around priv. SetCallback must be called
// before the first Dispatch.
func NewLocal(priv *paillier.PrivateKey) *Local {
	return &Local{priv: priv}
}

// SetCallback wires the delivery target. Separate from NewLocal because the
// engine and the oracle reference each other at startup.
func (l *Local) SetCallback(fn DeliverFunc) {
	l.deliver = fn
}

// Dispatch decrypts the tally on a goroutine and delivers the counts.
func (l *Local) Dispatch(ctx context.Context, req engine.DecryptRequest) error {
	if l.deliver == nil {
		return errors.New("local oracle has no callback wired")
	}

	go func() {
		counts := make([]uint64, len(req.Ciphertexts))
		for i, ct := range req.Ciphertexts {
			plain, err := paillier.Decrypt(l.priv, ct)
			if err != nil {
				slog.Error("local oracle decryption failed",
					"poll_id", req.PollID, "request_id", req.RequestID, "error", err)
				return
			}
			counts[i] = new(big.Int).SetBytes(plain).Uint64()
		}

		if err := l.deliver(context.Background(), req.PollID, req.RequestID, counts); err != nil {
			slog.Error("local oracle delivery rejected",
				"poll_id", req.PollID, "request_id", req.RequestID, "error", err)
		}
	}()

	return nil
}

// HTTPDispatcher forwards decrypt requests to a remote decryption service.
// The request carries the callback key the oracle must echo when it POSTs
// the plaintext counts back to /polls/{id}/decryption-result.
type HTTPDispatcher struct {
	url    string
	salt   string
	client *http.Client
}

func NewHTTPDispatcher(url, salt string) *HTTPDispatcher {
	return &HTTPDispatcher{
		url:    url,
		salt:   salt,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type decryptRequestJSON struct {
	PollID      int64    `json:"poll_id"`
	RequestID   string   `json:"request_id"`
	CallbackKey string   `json:"callback_key"`
	Ciphertexts []string `json:"ciphertexts"`
}

// Dispatch posts the request on a goroutine; the engine must never block on
// the oracle. A failed POST is logged and otherwise dropped - the protocol
// has no auto-retry, and the poll stays pending until the oracle operator
// resubmits or the creator pauses.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, req engine.DecryptRequest) error {
	hexCTs := make([]string, len(req.Ciphertexts))
	for i, ct := range req.Ciphertexts {
		hexCTs[i] = ct.Hex()
	}

	body, err := json.Marshal(decryptRequestJSON{
		PollID:      req.PollID,
		RequestID:   req.RequestID,
		CallbackKey: auth.OracleCallbackKey(req.PollID, req.RequestID, d.salt),
		Ciphertexts: hexCTs,
	})
	if err != nil {
		return fmt.Errorf("failed to encode decrypt request: %w", err)
	}

	go func() {
		httpReq, err := http.NewRequestWithContext(context.WithoutCancel(ctx),
			http.MethodPost, d.url, bytes.NewReader(body))
		if err != nil {
			slog.Error("failed to build oracle request", "poll_id", req.PollID, "error", err)
			return
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := d.client.Do(httpReq)
		if err != nil {
			slog.Error("oracle dispatch failed", "poll_id", req.PollID, "request_id", req.RequestID, "error", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			slog.Error("oracle rejected decrypt request",
				"poll_id", req.PollID, "request_id", req.RequestID, "status", resp.StatusCode)
			return
		}
		slog.Info("decrypt request accepted by oracle", "poll_id", req.PollID, "request_id", req.RequestID)
	}()

	return nil
}
