// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally wraps the Paillier cryptosystem in an opaque sealed-value
type. A Ciphertext supports exactly three things: creation as an encryption
of zero, homomorphic addition, and being handed to the decryption oracle as
raw bytes. There is no plaintext accessor, so per-option counts cannot leak
through this package even by accident.

Ballots are encryptions of one produced by EncryptUnit; accumulating a vote
is Add(pub, counter, ballot). Decryption lives in the oracle package, never
here.
*/
package tally
