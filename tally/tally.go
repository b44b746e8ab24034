// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	paillier "github.com/roasbeef/go-go-gadget-paillier"
)

var (
	ErrEmptyCiphertext = errors.New("empty ciphertext")
	ErrBadPublicKey    = errors.New("malformed public key")
)

// PublicKey is the election public key used to encrypt ballots and to
// homomorphically combine them.
type PublicKey = paillier.PublicKey

// PrivateKey decrypts tallies. It belongs to the decryption oracle; the
// engine itself never holds one.
type PrivateKey = paillier.PrivateKey

// Ciphertext is an opaque encrypted counter. The only operations available
// to the engine are Zero, Add, and handing the bytes to the oracle - there
// is deliberately no plaintext accessor here.
type Ciphertext []byte

// GenerateKey creates a fresh Paillier keypair. Used by the local dev
// oracle and by tests; production keys come from the external ceremony.
func GenerateKey(bits int) (*PrivateKey, error) {
	priv, err := paillier.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate paillier key: %w", err)
	}
	return priv, nil
}

// Zero returns a fresh encryption of zero. Each poll option starts from its
// own Zero so two polls never share ciphertext bytes.
func Zero(pub *PublicKey) (Ciphertext, error) {
	c, err := paillier.Encrypt(pub, []byte{0})
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt zero: %w", err)
	}
	return c, nil
}

// EncryptUnit returns an encryption of one - a single ballot's increment.
// This is the client-side half of the vote protocol; the server only ever
// calls it from tests and the dev tooling.
func EncryptUnit(pub *PublicKey) (Ciphertext, error) {
	c, err := paillier.Encrypt(pub, []byte{1})
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt unit: %w", err)
	}
	return c, nil
}

// Add homomorphically combines two ciphertexts into a ciphertext of their
// plaintext sum. Neither input is decrypted.
func Add(pub *PublicKey, a, b Ciphertext) Ciphertext {
	return paillier.AddCipher(pub, a, b)
}

// Hex encodes the ciphertext for storage and the wire.
func (c Ciphertext) Hex() string {
	return hex.EncodeToString(c)
}

// FromHex decodes a stored or submitted ciphertext. Empty input is
// rejected: a zero-length ciphertext can never be a valid Paillier value.
func FromHex(s string) (Ciphertext, error) {
	if s == "" {
		return nil, ErrEmptyCiphertext
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("malformed ciphertext hex: %w", err)
	}
	return Ciphertext(b), nil
}

type publicKeyJSON struct {
	Length int    `json:"length"`
	N      string `json:"n"`
}

// MarshalPublicKey serializes a public key as JSON. Only the modulus
// travels; its bit length is included as a sanity check, and g and n^2 are
// recomputed on parse.
func MarshalPublicKey(pub *PublicKey) ([]byte, error) {
	return json.Marshal(publicKeyJSON{
		Length: pub.N.BitLen(),
		N:      pub.N.Text(16),
	})
}

// ParsePublicKey reconstructs a public key from MarshalPublicKey output.
func ParsePublicKey(data []byte) (*PublicKey, error) {
	var pk publicKeyJSON
	if err := json.Unmarshal(data, &pk); err != nil {
		return nil, fmt.Errorf("malformed public key json: %w", err)
	}
	n, ok := new(big.Int).SetString(pk.N, 16)
	if !ok || n.Sign() <= 0 {
		return nil, ErrBadPublicKey
	}
	if pk.Length != 0 && pk.Length != n.BitLen() {
		return nil, ErrBadPublicKey
	}
	return &PublicKey{
		N:        n,
		G:        new(big.Int).Add(n, big.NewInt(1)),
		NSquared: new(big.Int).Mul(n, n),
	}, nil
}
