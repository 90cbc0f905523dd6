// Package cryptox holds the cryptographic primitives of PassKeeper: salted
// password hashing with constant-time verification, and passkey-based
// authenticated encryption of stored text.
//
// Both paths derive their material with the same slow KDF, PBKDF2 over
// HMAC-SHA256 with Iterations rounds, producing KeySize bytes from a
// SaltSize-byte random salt.
package cryptox

import (
	"crypto/sha256"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of every generated salt in bytes.
	SaltSize = 16

	// KeySize is the length of derived hashes and AES-256 keys in bytes.
	KeySize = 32

	// Iterations is the PBKDF2 round count.
	Iterations = 100_000
)

// DeriveKey stretches secret with salt into a KeySize-byte key.
// Deterministic for a given (secret, salt).
func DeriveKey(secret, salt []byte) []byte {
	return deriveKey(secret, salt, Iterations)
}

func deriveKey(secret, salt []byte, iterations int) []byte {
	return pbkdf2.Key(secret, salt, iterations, KeySize, sha256.New)
}

// NewSalt returns SaltSize bytes from a cryptographically secure source.
func NewSalt() ([]byte, error) {
	return common.GenerateRandBytes(SaltSize)
}
