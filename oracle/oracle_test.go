package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Bethune7436/N-private-poll-locker/auth"
	"github.com/Bethune7436/N-private-poll-locker/engine"
	"github.com/Bethune7436/N-private-poll-locker/tally"
)

func TestLocalDispatch(t *testing.T) {
	priv, err := tally.GenerateKey(512)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	// Tally of [2, 0]: two units plus a zero, and a plain zero.
	pub := &priv.PublicKey
	zero0, _ := tally.Zero(pub)
	u1, _ := tally.EncryptUnit(pub)
	u2, _ := tally.EncryptUnit(pub)
	first := tally.Add(pub, tally.Add(pub, zero0, u1), u2)
	second, _ := tally.Zero(pub)

	type delivery struct {
		pollID    int64
		requestID string
		counts    []uint64
	}
	got := make(chan delivery, 1)

	o := NewLocal(priv)
	o.SetCallback(func(ctx context.Context, pollID int64, requestID string, counts []uint64) error {
		got <- delivery{pollID, requestID, counts}
		return nil
	})

	err = o.Dispatch(context.Background(), engine.DecryptRequest{
		PollID:      7,
		RequestID:   "req-1",
		Ciphertexts: []tally.Ciphertext{first, second},
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	select {
	case d := <-got:
		if d.pollID != 7 || d.requestID != "req-1" {
			t.Errorf("Unexpected delivery identity: poll %d, request %s", d.pollID, d.requestID)
		}
		if len(d.counts) != 2 || d.counts[0] != 2 || d.counts[1] != 0 {
			t.Errorf("Expected counts [2 0], got %v", d.counts)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Local oracle never delivered")
	}
}

func TestLocalDispatchWithoutCallback(t *testing.T) {
	priv, err := tally.GenerateKey(512)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	o := NewLocal(priv)
	if err := o.Dispatch(context.Background(), engine.DecryptRequest{}); err == nil {
		t.Error("Expected error for unwired callback")
	}
}

func TestHTTPDispatch(t *testing.T) {
	received := make(chan decryptRequestJSON, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req decryptRequestJSON
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode dispatched request: %v", err)
		}
		received <- req
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(srv.URL, "test-salt")

	ct, _ := tally.FromHex("deadbeef")
	err := d.Dispatch(context.Background(), engine.DecryptRequest{
		PollID:      3,
		RequestID:   "req-9",
		Ciphertexts: []tally.Ciphertext{ct},
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	select {
	case req := <-received:
		if req.PollID != 3 || req.RequestID != "req-9" {
			t.Errorf("Unexpected request identity: poll %d, request %s", req.PollID, req.RequestID)
		}
		if len(req.Ciphertexts) != 1 || req.Ciphertexts[0] != "deadbeef" {
			t.Errorf("Unexpected ciphertexts: %v", req.Ciphertexts)
		}
		// The oracle gets the exact key it must echo on the callback.
		want := auth.OracleCallbackKey(3, "req-9", "test-salt")
		if req.CallbackKey != want {
			t.Errorf("Expected callback key %s, got %s", want, req.CallbackKey)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Dispatcher never posted to the oracle")
	}
}
