// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package oracle implements the engine.Dispatcher side of the finalization
handshake.

Two implementations:

  - HTTPDispatcher posts the encrypted tally to a remote threshold-
    decryption service together with an HMAC callback key. The service is
    expected to deliver plaintext counts to the engine's callback endpoint
    exactly once per accepted request (duplicates are tolerated there).
  - Local holds a full Paillier private key in-process and decrypts on a
    goroutine. Dev and test use only; it exists so the asynchronous
    request/callback shape can be exercised without a second service.

Both are fire-and-forget: Dispatch returns before the oracle answers, per
the Dispatcher contract.
*/
package oracle
