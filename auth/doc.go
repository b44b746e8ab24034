// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles caller identity and the oracle callback key.

# Caller Identity

Every state-mutating request carries the caller's address in the
X-Caller-Address header. The engine treats it as an opaque stable identity:
it is the voter-ledger key and the creator check for emergency pause.

# Oracle Callback Keys

When finalization dispatches a decryption request, the dispatcher attaches

	OracleCallbackKey(pollID, requestID, salt)

an HMAC over the poll id and the in-flight request id. The oracle echoes it
in X-Oracle-Key when delivering plaintext counts, and the callback handler
verifies it with ValidateOracleKey before the engine is touched. A key is
valid for exactly one (poll, request) pair, so replays against other polls
or superseded requests fail closed.
*/
package auth
