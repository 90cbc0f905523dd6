package users

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/docstore"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(docstore.NewFileBackend(dir), "users.json", logging.Nop()), dir
}

func cred(name string) Credential {
	return Credential{Username: name, Hash: []byte("0123456789abcdef0123456789abcdef"), Salt: []byte("0123456789abcdef")}
}

func TestCreateGet(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, cred("alice")))

	got, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, cred("alice"), *got)
}

func TestCreate_DuplicateLeavesOriginal(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, cred("alice")))

	other := cred("alice")
	other.Hash = []byte("ffffffffffffffffffffffffffffffff")
	require.ErrorIs(t, s.Create(ctx, other), common.ErrAlreadyExists)

	got, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, cred("alice").Hash, got.Hash)
}

func TestGet_NotFound(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestReplace(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.ErrorIs(t, s.Replace(ctx, cred("bob")), common.ErrNotFound)

	require.NoError(t, s.Create(ctx, cred("bob")))
	updated := Credential{Username: "bob", Hash: []byte("new-hash-new-hash-new-hash-new-h"), Salt: []byte("new-salt-new-sal")}
	require.NoError(t, s.Replace(ctx, updated))

	got, err := s.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, updated, *got)
}

func TestDelete(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, cred("alice")))
	require.NoError(t, s.Create(ctx, cred("bob")))
	require.NoError(t, s.Delete(ctx, "alice"))
	require.ErrorIs(t, s.Delete(ctx, "alice"), common.ErrNotFound)

	_, err := s.Get(ctx, "alice")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = s.Get(ctx, "bob")
	require.NoError(t, err)
}

func TestPersistedShape(t *testing.T) {
	s, dir := newStore(t)
	require.NoError(t, s.Create(context.Background(), cred("alice")))

	data, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"alice":{"hash":"MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=","salt":"MDEyMzQ1Njc4OWFiY2RlZg=="}}`, string(data))
}

func TestReadsExistingDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"),
		[]byte(`{"carol": {"hash": "aGFzaA==", "salt": "c2FsdA=="}}`), 0o600))

	s := NewStore(docstore.NewFileBackend(dir), "users.json", logging.Nop())
	got, err := s.Get(context.Background(), "carol")
	require.NoError(t, err)
	assert.Equal(t, []byte("hash"), got.Hash)
	assert.Equal(t, []byte("salt"), got.Salt)
}

func TestGet_BadEncodingIsStorageFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"),
		[]byte(`{"dave": {"hash": "***", "salt": "c2FsdA=="}}`), 0o600))

	s := NewStore(docstore.NewFileBackend(dir), "users.json", logging.Nop())
	_, err := s.Get(context.Background(), "dave")
	require.ErrorIs(t, err, common.ErrStorage)
}

func TestCorruptDocumentStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(`{oops`), 0o600))

	s := NewStore(docstore.NewFileBackend(dir), "users.json", logging.Nop())
	_, err := s.Get(context.Background(), "anyone")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, s.Create(context.Background(), cred("erin")))
	_, err = s.Get(context.Background(), "erin")
	require.NoError(t, err)
}
