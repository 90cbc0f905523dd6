package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/cryptox"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
)

// Entry describes a stored record without its contents.
type Entry struct {
	Index     int
	CreatedAt time.Time
}

// SecretService defines operations on a user's encrypted records.
type SecretService interface {
	Store(ctx context.Context, username, text string, passkey []byte) (Entry, error)
	List(ctx context.Context, username string) ([]Entry, error)
	Reveal(ctx context.Context, username string, index int, passkey []byte) (string, error)
	Delete(ctx context.Context, username string, index int) error
}

type secretService struct {
	records RecordStore
	log     logging.Logger
}

func NewSecretService(r RecordStore, log logging.Logger) SecretService {
	return &secretService{records: r, log: log.With("component", "secrets")}
}

// Store encrypts text under passkey and appends the result to username's
// records.
func (s *secretService) Store(ctx context.Context, username, text string, passkey []byte) (Entry, error) {
	if text == "" || len(passkey) == 0 {
		return Entry{}, fmt.Errorf("%w: text and passkey are required", common.ErrInvalidInput)
	}

	ct, salt, err := cryptox.Encrypt([]byte(text), passkey)
	if err != nil {
		return Entry{}, err
	}

	rec, index, err := s.records.Append(ctx, username, ct, salt)
	if err != nil {
		return Entry{}, err
	}

	s.log.Info(ctx, "record stored", "username", username, "index", index)
	return Entry{Index: index, CreatedAt: rec.CreatedAt}, nil
}

func (s *secretService) List(ctx context.Context, username string) ([]Entry, error) {
	recs, err := s.records.List(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(recs))
	for i, r := range recs {
		out[i] = Entry{Index: i, CreatedAt: r.CreatedAt}
	}
	return out, nil
}

// Reveal decrypts record index. A wrong passkey and a damaged record both
// yield common.ErrDecryptionFailed.
func (s *secretService) Reveal(ctx context.Context, username string, index int, passkey []byte) (string, error) {
	recs, err := s.records.List(ctx, username)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(recs) {
		return "", common.ErrIndexOutOfRange
	}

	pt, err := cryptox.Decrypt(recs[index].Ciphertext, passkey, recs[index].Salt)
	if err != nil {
		s.log.Debug(ctx, "decryption failed", "username", username, "index", index)
		return "", err
	}
	defer common.WipeByteArray(pt)

	return string(pt), nil
}

func (s *secretService) Delete(ctx context.Context, username string, index int) error {
	if err := s.records.DeleteAt(ctx, username, index); err != nil {
		return err
	}
	s.log.Info(ctx, "record deleted", "username", username, "index", index)
	return nil
}
