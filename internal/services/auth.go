package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/cryptox"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/users"
)

// AuthService defines the account operations.
//
// Contract:
//   - Register: create a credential; ErrAlreadyExists if taken.
//   - Verify: check a password without touching the throttle.
//   - Authenticate: throttled login returning *LockedOutError or
//     *WrongPasswordError on failure.
//   - ChangePassword / DeleteUser: authenticate first, then mutate.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Verify(ctx context.Context, username string, password []byte) error
	Authenticate(ctx context.Context, username string, password []byte) error
	ChangePassword(ctx context.Context, username string, current, next []byte) error
	DeleteUser(ctx context.Context, username string, password []byte) error
}

type authService struct {
	users   CredentialStore
	records RecordStore
	limiter Limiter
	policy  DeletePolicy
	log     logging.Logger
}

// NewAuthService wires an AuthService. records may be nil only with
// PolicyOrphan.
func NewAuthService(u CredentialStore, r RecordStore, l Limiter, policy DeletePolicy, log logging.Logger) AuthService {
	return &authService{
		users:   u,
		records: r,
		limiter: l,
		policy:  policy,
		log:     log.With("component", "auth"),
	}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	if username == "" || len(password) == 0 {
		return fmt.Errorf("%w: username and password cannot be empty", common.ErrInvalidInput)
	}

	hash, salt, err := cryptox.HashPassword(password, nil)
	if err != nil {
		return err
	}

	if err := a.users.Create(ctx, users.Credential{Username: username, Hash: hash, Salt: salt}); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			a.log.Info(ctx, "registration rejected, username taken", "username", username)
		}
		return err
	}

	a.log.Info(ctx, "user registered", "username", username)
	return nil
}

// Verify returns common.ErrNotFound or common.ErrWrongPassword.
func (a *authService) Verify(ctx context.Context, username string, password []byte) error {
	cred, err := a.users.Get(ctx, username)
	if err != nil {
		return err
	}
	if !cryptox.VerifyPassword(password, cred.Hash, cred.Salt) {
		return common.ErrWrongPassword
	}
	return nil
}

func (a *authService) Authenticate(ctx context.Context, username string, password []byte) error {
	if err := a.limiter.Check(username); err != nil {
		a.log.Warn(ctx, "login attempt while locked", "username", username)
		return err
	}

	err := a.Verify(ctx, username, password)
	switch {
	case err == nil:
		a.limiter.Reset(username)
		a.log.Info(ctx, "authentication succeeded", "username", username)
		return nil
	case errors.Is(err, common.ErrWrongPassword):
		ferr := a.limiter.Fail(username)
		var lo *common.LockedOutError
		if errors.As(ferr, &lo) {
			a.log.Warn(ctx, "lockout triggered", "username", username, "seconds", lo.Seconds())
		} else {
			a.log.Info(ctx, "authentication failed", "username", username)
		}
		return ferr
	default:
		return err
	}
}

func (a *authService) ChangePassword(ctx context.Context, username string, current, next []byte) error {
	if len(next) == 0 {
		return fmt.Errorf("%w: new password cannot be empty", common.ErrInvalidInput)
	}
	if err := a.Authenticate(ctx, username, current); err != nil {
		return err
	}

	hash, salt, err := cryptox.HashPassword(next, nil)
	if err != nil {
		return err
	}
	if err := a.users.Replace(ctx, users.Credential{Username: username, Hash: hash, Salt: salt}); err != nil {
		return err
	}

	a.log.Info(ctx, "password changed", "username", username)
	return nil
}

func (a *authService) DeleteUser(ctx context.Context, username string, password []byte) error {
	if err := a.Authenticate(ctx, username, password); err != nil {
		return err
	}

	if a.policy == PolicyReject {
		n, err := a.records.Count(ctx, username)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %d records", common.ErrHasRecords, n)
		}
	}

	if err := a.users.Delete(ctx, username); err != nil {
		return err
	}
	a.limiter.Forget(username)

	removed := 0
	if a.policy == PolicyCascade {
		n, err := a.records.DeleteAll(ctx, username)
		if err != nil {
			return fmt.Errorf("account deleted but records remain: %w", err)
		}
		removed = n
	}

	a.log.Info(ctx, "account deleted", "username", username, "policy", string(a.policy), "records_removed", removed)
	return nil
}

// ConfirmPassword is the caller-side check that a new password was typed
// the same way twice.
func ConfirmPassword(password, confirm []byte) error {
	if string(password) != string(confirm) {
		return common.ErrPasswordMismatch
	}
	return nil
}
