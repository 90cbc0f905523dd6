package services

import (
	"context"

	"github.com/dmitrijs2005/passkeeper/internal/records"
	"github.com/dmitrijs2005/passkeeper/internal/users"
)

// CredentialStore is the subset of users.Store used by AuthService.
type CredentialStore interface {
	Create(ctx context.Context, c users.Credential) error
	Get(ctx context.Context, username string) (*users.Credential, error)
	Replace(ctx context.Context, c users.Credential) error
	Delete(ctx context.Context, username string) error
}

// RecordStore is the subset of records.Store used by the services.
type RecordStore interface {
	Append(ctx context.Context, username string, ciphertext, salt []byte) (records.Record, int, error)
	List(ctx context.Context, username string) ([]records.Record, error)
	Count(ctx context.Context, username string) (int, error)
	DeleteAt(ctx context.Context, username string, index int) error
	DeleteAll(ctx context.Context, username string) (int, error)
}

// Limiter tracks failed logins; see throttle.Throttle.
type Limiter interface {
	Check(username string) error
	Fail(username string) error
	Reset(username string)
	Forget(username string)
}
