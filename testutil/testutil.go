// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/Bethune7436/N-private-poll-locker/cliparse"
	"github.com/Bethune7436/N-private-poll-locker/db"
	"github.com/Bethune7436/N-private-poll-locker/engine"
	"github.com/Bethune7436/N-private-poll-locker/tally"
)

// Small key so key generation doesn't dominate test time. Counts fit
// comfortably regardless of key size.
const testKeyBits = 512

var (
	keyOnce sync.Once
	testKey *tally.PrivateKey
	keyErr  error

	dbSeq atomic.Int64
)

// TestKey returns a process-wide Paillier keypair for tests.
func TestKey(t *testing.T) *tally.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		testKey, keyErr = tally.GenerateKey(testKeyBits)
	})
	if keyErr != nil {
		t.Fatalf("Failed to generate test key: %v", keyErr)
	}
	return testKey
}

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:polltest%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection keeps the in-memory database alive and serializes
	// access the way the production Postgres setup would via row locks.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		OracleKeySalt: "test-oracle-salt",
		Dev:           true,
	}
}

// RecordingDispatcher captures decrypt requests so tests can assert on the
// dispatched handshake and drive the callback themselves.
type RecordingDispatcher struct {
	Requests chan engine.DecryptRequest
}

func NewRecordingDispatcher() *RecordingDispatcher {
	return &RecordingDispatcher{Requests: make(chan engine.DecryptRequest, 8)}
}

func (d *RecordingDispatcher) Dispatch(ctx context.Context, req engine.DecryptRequest) error {
	d.Requests <- req
	return nil
}

// NewTestEngine builds an engine over a fresh database with the shared test
// key and a recording dispatcher.
func NewTestEngine(t *testing.T) (*engine.Engine, *RecordingDispatcher) {
	t.Helper()

	conn := SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	disp := NewRecordingDispatcher()
	priv := TestKey(t)
	return engine.New(conn, &priv.PublicKey, disp), disp
}

// CreateTestPoll registers a poll with three options and returns its id.
func CreateTestPoll(t *testing.T, eng *engine.Engine, creator string, startTime, endTime int64) int64 {
	t.Helper()

	id, err := eng.CreatePoll(context.Background(), "Test Poll",
		[]string{"Red", "Blue", "Green"}, startTime, endTime, creator)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return id
}

// EncryptUnitBallot returns a hex-encoded encryption of one under the test
// key, as a voting client would produce.
func EncryptUnitBallot(t *testing.T) string {
	t.Helper()

	priv := TestKey(t)
	ct, err := tally.EncryptUnit(&priv.PublicKey)
	if err != nil {
		t.Fatalf("Failed to encrypt ballot: %v", err)
	}
	return ct.Hex()
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
