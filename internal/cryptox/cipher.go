package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/dmitrijs2005/passkeeper/internal/common"
)

const (
	// NonceSize is the size of the GCM nonce prepended to every ciphertext.
	NonceSize = 12

	// TagSize is the size of the GCM authentication tag.
	TagSize = 16
)

// Encrypt seals plaintext under a key derived from passkey and a fresh salt.
//
// The returned ciphertext is self-contained: nonce (12 bytes) followed by
// the AES-256-GCM output (ciphertext + 16-byte tag). The salt must be kept
// next to it; the passkey itself is never stored.
func Encrypt(plaintext, passkey []byte) (ciphertext, salt []byte, err error) {
	salt, err = NewSalt()
	if err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}

	key := DeriveKey(passkey, salt)
	defer common.WipeByteArray(key)

	ciphertext, err = seal(key, plaintext)
	if err != nil {
		return nil, nil, err
	}
	return ciphertext, salt, nil
}

// Decrypt re-derives the key from (passkey, salt) and opens ciphertext.
//
// Every failure (wrong passkey, truncated or tampered blob) is reported as
// common.ErrDecryptionFailed and nothing else.
func Decrypt(ciphertext, passkey, salt []byte) ([]byte, error) {
	key := DeriveKey(passkey, salt)
	defer common.WipeByteArray(key)

	plaintext, err := open(key, ciphertext)
	if err != nil {
		return nil, common.ErrDecryptionFailed
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return aesgcm, nil
}

func seal(key, plaintext []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, err := common.GenerateRandBytes(NonceSize)
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// nonce is reused as dst so the result is nonce || ciphertext || tag
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

func open(key, blob []byte) ([]byte, error) {
	if len(blob) < NonceSize+TagSize {
		return nil, fmt.Errorf("ciphertext too short: %d bytes", len(blob))
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, body := blob[:NonceSize], blob[NonceSize:]
	return aesgcm.Open(nil, nonce, body, nil)
}
