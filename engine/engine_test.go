package engine

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	paillier "github.com/roasbeef/go-go-gadget-paillier"
	_ "modernc.org/sqlite"

	"github.com/Bethune7436/N-private-poll-locker/db"
	"github.com/Bethune7436/N-private-poll-locker/tally"
)

var (
	keyOnce sync.Once
	privKey *tally.PrivateKey
	dbSeq   atomic.Int64
)

// testKey returns a shared small keypair; generating one per test is slow.
func testKey(t *testing.T) *tally.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		var err error
		privKey, err = tally.GenerateKey(512)
		if err != nil {
			t.Fatalf("Failed to generate test key: %v", err)
		}
	})
	return privKey
}

// captureDispatcher records dispatched decrypt requests for assertions.
type captureDispatcher struct {
	requests chan DecryptRequest
}

func (d *captureDispatcher) Dispatch(ctx context.Context, req DecryptRequest) error {
	d.requests <- req
	return nil
}

func (d *captureDispatcher) last(t *testing.T) DecryptRequest {
	t.Helper()
	select {
	case req := <-d.requests:
		return req
	default:
		t.Fatal("Expected a dispatched decrypt request")
		return DecryptRequest{}
	}
}

func newTestEngine(t *testing.T) (*Engine, *captureDispatcher) {
	t.Helper()

	dsn := fmt.Sprintf("file:enginetest%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	disp := &captureDispatcher{requests: make(chan DecryptRequest, 8)}
	priv := testKey(t)
	return New(conn, &priv.PublicKey, disp), disp
}

// makePoll creates a three-option poll with the given window offsets
// relative to now and returns its id.
func makePoll(t *testing.T, eng *Engine, creator string, startOffset, endOffset int64) int64 {
	t.Helper()

	now := time.Now().Unix()
	id, err := eng.CreatePoll(context.Background(), "Test Poll",
		[]string{"Red", "Blue", "Green"}, now+startOffset, now+endOffset, creator)
	if err != nil {
		t.Fatalf("Failed to create poll: %v", err)
	}
	return id
}

// unitBallot encrypts one under the test key, as a voting client would.
func unitBallot(t *testing.T) tally.Ciphertext {
	t.Helper()

	ct, err := tally.EncryptUnit(&testKey(t).PublicKey)
	if err != nil {
		t.Fatalf("Failed to encrypt ballot: %v", err)
	}
	return ct
}

// decryptCounts opens a ciphertext tally with the test private key. Only
// tests get to do this; the engine has no decryption path.
func decryptCounts(t *testing.T, cts []tally.Ciphertext) []uint64 {
	t.Helper()

	counts := make([]uint64, len(cts))
	for i, ct := range cts {
		plain, err := paillier.Decrypt(testKey(t), ct)
		if err != nil {
			t.Fatalf("Failed to decrypt option %d: %v", i, err)
		}
		counts[i] = new(big.Int).SetBytes(plain).Uint64()
	}
	return counts
}
