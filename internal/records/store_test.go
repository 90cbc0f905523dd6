package records

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/docstore"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = "data/encrypted_data.json"

type tick struct{ t time.Time }

func (c *tick) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	clock := &tick{t: time.Unix(1_700_000_000, 0)}
	return NewStore(docstore.NewFileBackend(dir), document, logging.Nop(), WithClock(clock.now)), dir
}

func seed(t *testing.T, s *Store, user string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, idx, err := s.Append(context.Background(), user, []byte{byte('a' + i)}, []byte{byte('0' + i)})
		require.NoError(t, err)
		require.Equal(t, i, idx)
	}
}

func TestList_EmptyForUnknownUser(t *testing.T) {
	s, _ := newStore(t)

	got, err := s.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAppend_KeepsInsertionOrder(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	seed(t, s, "alice", 3)
	seed(t, s, "bob", 1)

	got, err := s.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, r := range got {
		assert.Equal(t, []byte{byte('a' + i)}, r.Ciphertext)
		assert.Equal(t, []byte{byte('0' + i)}, r.Salt)
	}
	assert.True(t, got[0].CreatedAt.Before(got[1].CreatedAt))
	assert.True(t, got[1].CreatedAt.Before(got[2].CreatedAt))

	n, err := s.Count(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAppend_ReturnsRecordWithTimestamp(t *testing.T) {
	s, _ := newStore(t)

	rec, idx, err := s.Append(context.Background(), "alice", []byte("ct"), []byte("salt"))
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1_700_000_001, 0), rec.CreatedAt)
	assert.Equal(t, 0, idx)
}

func TestAppend_ConcurrentIndexesAreDistinct(t *testing.T) {
	s := NewStore(docstore.NewFileBackend(t.TempDir()), document, logging.Nop())
	ctx := context.Background()

	const n = 20
	idx := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, pos, err := s.Append(ctx, "alice", []byte{byte(i)}, []byte("salt"))
			assert.NoError(t, err)
			idx[i] = pos
		}(i)
	}
	wg.Wait()

	seen := map[int]bool{}
	for _, pos := range idx {
		seen[pos] = true
	}
	assert.Len(t, seen, n)

	got, err := s.List(ctx, "alice")
	require.NoError(t, err)
	for i, pos := range idx {
		assert.Equal(t, []byte{byte(i)}, got[pos].Ciphertext)
	}
}

func TestDeleteAt_FirstOfThree(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	seed(t, s, "alice", 3)

	before, err := s.List(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, s.DeleteAt(ctx, "alice", 0))

	after, err := s.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, before[1], after[0])
	assert.Equal(t, before[2], after[1])
}

func TestDeleteAt_OutOfRangeLeavesListUnchanged(t *testing.T) {
	s, dir := newStore(t)
	ctx := context.Background()
	seed(t, s, "alice", 2)

	path := filepath.Join(dir, filepath.FromSlash(document))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, idx := range []int{-1, 2, 100} {
		require.ErrorIs(t, s.DeleteAt(ctx, "alice", idx), common.ErrIndexOutOfRange, "index %d", idx)
	}
	require.ErrorIs(t, s.DeleteAt(ctx, "nobody", 0), common.ErrIndexOutOfRange)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, after)
}

func TestDeleteAt_LastLeavesEmptyList(t *testing.T) {
	s, dir := newStore(t)
	ctx := context.Background()
	seed(t, s, "alice", 1)

	require.NoError(t, s.DeleteAt(ctx, "alice", 0))

	raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(document)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"alice":[]}`, string(raw))
}

func TestDeleteAll(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	seed(t, s, "alice", 3)
	seed(t, s, "bob", 2)

	n, err := s.DeleteAll(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := s.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.List(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPersistedShape(t *testing.T) {
	s, dir := newStore(t)
	_, _, err := s.Append(context.Background(), "alice", []byte("ct"), []byte("salt"))
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(document)))
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc["alice"], 1)
	entry := doc["alice"][0]
	assert.Equal(t, "Y3Q=", entry["encrypted_text"])
	assert.Equal(t, "c2FsdA==", entry["passkey_hash"])
	assert.Equal(t, float64(1_700_000_001), entry["timestamp"])
}

func TestList_ReadsFractionalTimestampsAndBadEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "encrypted_data.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"alice": [
		{"encrypted_text": "Y3Q=", "passkey_hash": "c2FsdA==", "timestamp": 1712345678.5},
		{"encrypted_text": "%%%", "passkey_hash": "c2FsdA==", "timestamp": 1712345679.0}
	]}`), 0o600))

	s := NewStore(docstore.NewFileBackend(dir), document, logging.Nop())
	got, err := s.List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, []byte("ct"), got[0].Ciphertext)
	assert.Equal(t, time.Unix(1712345678, 500_000_000), got[0].CreatedAt)
	assert.Nil(t, got[1].Ciphertext)
}
