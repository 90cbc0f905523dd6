// Package common defines the sentinel errors and small helpers shared by the
// credential, throttle, cipher and record layers of PassKeeper. Callers should
// use errors.Is / errors.As to match these values.
package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Credential errors.
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrLockedOut     = errors.New("locked out")

	// Caller-side validation.
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidInput     = errors.New("invalid input")

	// Secret record errors.
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrHasRecords       = errors.New("user has stored records")

	// Persistence errors.
	ErrStorage = errors.New("storage failure")
)

// WrongPasswordError reports a failed password check together with the
// number of attempts left before the account is locked.
type WrongPasswordError struct {
	Remaining int
}

func (e *WrongPasswordError) Error() string {
	return fmt.Sprintf("wrong password: %d attempts remaining", e.Remaining)
}

func (e *WrongPasswordError) Unwrap() error { return ErrWrongPassword }

// LockedOutError reports an account that is inside its lockout window.
// Triggered is set when the current attempt is the one that caused the lock.
type LockedOutError struct {
	Remaining time.Duration
	Triggered bool
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("locked out: %d seconds remaining", e.Seconds())
}

func (e *LockedOutError) Unwrap() error { return ErrLockedOut }

// Seconds returns the remaining lockout time in whole seconds, truncated.
func (e *LockedOutError) Seconds() int {
	return int(e.Remaining / time.Second)
}
