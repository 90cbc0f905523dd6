package cryptox

import (
	"crypto/subtle"
	"fmt"
)

// HashPassword derives the stored hash for password. When salt is nil a
// fresh random salt is generated; the salt actually used is returned so the
// caller can persist it next to the hash.
func HashPassword(password, salt []byte) (hash, usedSalt []byte, err error) {
	if salt == nil {
		salt, err = NewSalt()
		if err != nil {
			return nil, nil, fmt.Errorf("generate salt: %w", err)
		}
	}
	return DeriveKey(password, salt), salt, nil
}

// VerifyPassword recomputes the hash of password under salt and compares it
// with storedHash in constant time.
func VerifyPassword(password, storedHash, salt []byte) bool {
	candidate := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(candidate, storedHash) == 1
}
