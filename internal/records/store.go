// Package records persists the per-user ordered lists of encrypted entries.
//
// The persisted document keeps the field names of the original data files:
//
//	{"alice": [{"encrypted_text": "<base64>", "passkey_hash": "<base64 salt>", "timestamp": 1712345678.123}]}
//
// "passkey_hash" holds the KDF salt, not a hash of the passkey.
package records

import (
	"context"
	"encoding/base64"
	"math"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/docstore"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
)

// Record is one stored secret.
type Record struct {
	Ciphertext []byte
	Salt       []byte
	CreatedAt  time.Time
}

type recordDoc struct {
	EncryptedText string  `json:"encrypted_text"`
	PasskeyHash   string  `json:"passkey_hash"`
	Timestamp     float64 `json:"timestamp"`
}

func toEpoch(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromEpoch(f float64) time.Time {
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}

// Store is the secret record repository.
type Store struct {
	doc *docstore.Document[[]recordDoc]
	log logging.Logger
	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(backend docstore.Backend, document string, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		doc: docstore.NewDocument[[]recordDoc](backend, document, log),
		log: log,
		now: time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Append stores a new record at the end of username's list and returns it
// together with its 0-based position.
func (s *Store) Append(ctx context.Context, username string, ciphertext, salt []byte) (Record, int, error) {
	rec := Record{Ciphertext: ciphertext, Salt: salt, CreatedAt: s.now()}

	index := 0
	err := s.doc.Update(ctx, func(m map[string][]recordDoc) error {
		m[username] = append(m[username], recordDoc{
			EncryptedText: base64.StdEncoding.EncodeToString(ciphertext),
			PasskeyHash:   base64.StdEncoding.EncodeToString(salt),
			Timestamp:     toEpoch(rec.CreatedAt),
		})
		index = len(m[username]) - 1
		return nil
	})
	if err != nil {
		return Record{}, 0, err
	}
	return rec, index, nil
}

// List returns username's records oldest first; empty when there are none.
//
// A record whose blobs are not valid base64 is returned with nil Ciphertext
// so that it can still be listed and deleted; decrypting it fails.
func (s *Store) List(ctx context.Context, username string) ([]Record, error) {
	m, err := s.doc.Read(ctx)
	if err != nil {
		return nil, err
	}

	docs := m[username]
	out := make([]Record, 0, len(docs))
	for i, d := range docs {
		rec := Record{CreatedAt: fromEpoch(d.Timestamp)}
		ct, ctErr := base64.StdEncoding.DecodeString(d.EncryptedText)
		salt, saltErr := base64.StdEncoding.DecodeString(d.PasskeyHash)
		if ctErr != nil || saltErr != nil {
			s.log.Warn(ctx, "record has undecodable fields", "username", username, "index", i)
		} else {
			rec.Ciphertext, rec.Salt = ct, salt
		}
		out = append(out, rec)
	}
	return out, nil
}

// Count returns the number of records of username.
func (s *Store) Count(ctx context.Context, username string) (int, error) {
	m, err := s.doc.Read(ctx)
	if err != nil {
		return 0, err
	}
	return len(m[username]), nil
}

// DeleteAt removes the record at 0-based index. An index outside
// [0, len) yields common.ErrIndexOutOfRange and nothing is written.
func (s *Store) DeleteAt(ctx context.Context, username string, index int) error {
	return s.doc.Update(ctx, func(m map[string][]recordDoc) error {
		list := m[username]
		if index < 0 || index >= len(list) {
			return common.ErrIndexOutOfRange
		}
		m[username] = append(list[:index:index], list[index+1:]...)
		return nil
	})
}

// DeleteAll drops every record of username and reports how many were removed.
func (s *Store) DeleteAll(ctx context.Context, username string) (int, error) {
	removed := 0
	err := s.doc.Update(ctx, func(m map[string][]recordDoc) error {
		removed = len(m[username])
		delete(m, username)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
