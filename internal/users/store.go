// Package users persists the username -> credential mapping.
//
// The mapping lives in one JSON document shaped as
//
//	{"alice": {"hash": "<base64>", "salt": "<base64>"}}
//
// and is rewritten in full on every mutation.
package users

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/docstore"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
)

// Credential is the stored password verifier of one user.
type Credential struct {
	Username string
	Hash     []byte
	Salt     []byte
}

type credentialDoc struct {
	Hash string `json:"hash"`
	Salt string `json:"salt"`
}

func toDoc(c Credential) credentialDoc {
	return credentialDoc{
		Hash: base64.StdEncoding.EncodeToString(c.Hash),
		Salt: base64.StdEncoding.EncodeToString(c.Salt),
	}
}

func fromDoc(username string, d credentialDoc) (*Credential, error) {
	hash, err := base64.StdEncoding.DecodeString(d.Hash)
	if err != nil {
		return nil, fmt.Errorf("%w: credential of %q: bad hash encoding", common.ErrStorage, username)
	}
	salt, err := base64.StdEncoding.DecodeString(d.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: credential of %q: bad salt encoding", common.ErrStorage, username)
	}
	return &Credential{Username: username, Hash: hash, Salt: salt}, nil
}

// Store is the credential repository.
type Store struct {
	doc *docstore.Document[credentialDoc]
}

func NewStore(backend docstore.Backend, document string, log logging.Logger) *Store {
	return &Store{doc: docstore.NewDocument[credentialDoc](backend, document, log)}
}

// Create adds c. It fails with common.ErrAlreadyExists, leaving the stored
// credential untouched, when the username is taken.
func (s *Store) Create(ctx context.Context, c Credential) error {
	return s.doc.Update(ctx, func(m map[string]credentialDoc) error {
		if _, ok := m[c.Username]; ok {
			return common.ErrAlreadyExists
		}
		m[c.Username] = toDoc(c)
		return nil
	})
}

// Get returns the credential of username or common.ErrNotFound.
func (s *Store) Get(ctx context.Context, username string) (*Credential, error) {
	m, err := s.doc.Read(ctx)
	if err != nil {
		return nil, err
	}
	d, ok := m[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return fromDoc(username, d)
}

// Replace overwrites the credential of an existing user.
func (s *Store) Replace(ctx context.Context, c Credential) error {
	return s.doc.Update(ctx, func(m map[string]credentialDoc) error {
		if _, ok := m[c.Username]; !ok {
			return common.ErrNotFound
		}
		m[c.Username] = toDoc(c)
		return nil
	})
}

// Delete removes the credential of username.
func (s *Store) Delete(ctx context.Context, username string) error {
	return s.doc.Update(ctx, func(m map[string]credentialDoc) error {
		if _, ok := m[username]; !ok {
			return common.ErrNotFound
		}
		delete(m, username)
		return nil
	})
}
