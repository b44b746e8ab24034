// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

var (
	ErrMissingCaller    = errors.New("missing caller address")
	ErrInvalidCaller    = errors.New("invalid caller address")
	ErrInvalidOracleKey = errors.New("invalid oracle callback key")
)

// CallerHeader carries the stable caller identity on every authenticated
// request. Identity issuance is the wallet layer's problem; the engine only
// requires that the value is stable per caller.
const CallerHeader = "X-Caller-Address"

// OracleKeyHeader authenticates the decryption callback.
const OracleKeyHeader = "X-Oracle-Key"

const maxCallerLen = 128

// CallerAddress extracts and validates the caller identity from a request.
func CallerAddress(r *http.Request) (string, error) {
	addr := strings.TrimSpace(r.Header.Get(CallerHeader))
	if addr == "" {
		return "", ErrMissingCaller
	}
	if len(addr) > maxCallerLen {
		return "", ErrInvalidCaller
	}
	for i := 0; i < len(addr); i++ {
		// printable ASCII, no spaces
		if addr[i] <= ' ' || addr[i] > '~' {
			return "", ErrInvalidCaller
		}
	}
	return addr, nil
}

// OracleCallbackKey derives the key the oracle must present when it
// delivers a decryption result. Binding the key to both the poll and the
// in-flight request id makes a captured key useless for any other callback.
func OracleCallbackKey(pollID int64, requestID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strconv.FormatInt(pollID, 10)))
	h.Write([]byte(":"))
	h.Write([]byte(requestID))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateOracleKey checks a presented callback key in constant time.
func ValidateOracleKey(pollID int64, requestID, presented, salt string) error {
	expected := OracleCallbackKey(pollID, requestID, salt)
	if !hmac.Equal([]byte(presented), []byte(expected)) {
		return ErrInvalidOracleKey
	}
	return nil
}
