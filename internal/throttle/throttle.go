// Package throttle tracks failed login attempts and lockout windows per
// username.
//
// State is kept in process memory only: restarting the process unlocks every
// account and clears all counters. It is not a guarantee against an attacker
// who can restart the process.
package throttle

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
)

const (
	// DefaultMaxAttempts is the number of consecutive failures that locks
	// an account.
	DefaultMaxAttempts = 3

	// DefaultLockoutDuration is how long a locked account stays locked.
	DefaultLockoutDuration = 300 * time.Second
)

type state struct {
	failed      int
	lockedUntil time.Time
}

// Throttle is safe for concurrent use.
type Throttle struct {
	mu          sync.Mutex
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
	states      map[string]*state
}

// Option configures a Throttle.
type Option func(*Throttle)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Throttle) { t.now = now }
}

// New returns a Throttle that locks a username for lockout once it has
// failed maxAttempts times in a row.
func New(maxAttempts int, lockout time.Duration, opts ...Option) *Throttle {
	t := &Throttle{
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
		states:      map[string]*state{},
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Check returns a *common.LockedOutError while username is locked. A lock
// whose window has passed is lifted here and its counter reset.
func (t *Throttle) Check(username string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.states[username]
	if !ok || st.lockedUntil.IsZero() {
		return nil
	}

	now := t.now()
	if now.Before(st.lockedUntil) {
		return &common.LockedOutError{Remaining: st.lockedUntil.Sub(now)}
	}

	st.lockedUntil = time.Time{}
	st.failed = 0
	return nil
}

// Fail records a wrong password. It returns *common.LockedOutError with
// Triggered set when this failure reaches the limit, otherwise
// *common.WrongPasswordError with the attempts left.
func (t *Throttle) Fail(username string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.states[username]
	if !ok {
		st = &state{}
		t.states[username] = st
	}
	st.failed++

	if st.failed >= t.maxAttempts {
		st.lockedUntil = t.now().Add(t.lockout)
		return &common.LockedOutError{Remaining: t.lockout, Triggered: true}
	}
	return &common.WrongPasswordError{Remaining: t.maxAttempts - st.failed}
}

// Reset clears the failure counter after a successful login.
func (t *Throttle) Reset(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if st, ok := t.states[username]; ok {
		st.failed = 0
		st.lockedUntil = time.Time{}
	}
}

// Forget drops all state for username.
func (t *Throttle) Forget(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, username)
}

// Failures returns the current failure count of username.
func (t *Throttle) Failures(username string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.states[username]; ok {
		return st.failed
	}
	return 0
}
