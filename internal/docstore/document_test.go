package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend is an in-memory Backend with injectable failures.
type memBackend struct {
	mu      sync.Mutex
	docs    map[string][]byte
	loadErr error
	saveErr error
	saves   int
}

func newMemBackend() *memBackend { return &memBackend{docs: map[string][]byte{}} }

func (m *memBackend) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	v, ok := m.docs[name]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return v, nil
}

func (m *memBackend) Save(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.docs[name] = append([]byte(nil), data...)
	return nil
}

func (m *memBackend) Close() error { return nil }

func TestDocument_MissingIsEmpty(t *testing.T) {
	doc := NewDocument[int](newMemBackend(), "d", logging.Nop())

	m, err := doc.Read(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

func TestDocument_CorruptIsEmpty(t *testing.T) {
	for _, body := range []string{"{not json", "null", `[1,2]`} {
		b := newMemBackend()
		b.docs["d"] = []byte(body)
		doc := NewDocument[int](b, "d", logging.Nop())

		m, err := doc.Read(context.Background())
		require.NoError(t, err, body)
		assert.Empty(t, m, body)
	}
}

func TestDocument_MalformedEntryKeepsOthers(t *testing.T) {
	b := newMemBackend()
	b.docs["d"] = []byte(`{"alice": "x", "bob": [1, 2], "carol": [3]}`)
	doc := NewDocument[[]int](b, "d", logging.Nop())
	ctx := context.Background()

	m, err := doc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]int{"bob": {1, 2}, "carol": {3}}, m)

	require.NoError(t, doc.Update(ctx, func(m map[string][]int) error {
		m["dave"] = []int{4}
		return nil
	}))
	assert.JSONEq(t, `{"bob":[1,2],"carol":[3],"dave":[4]}`, string(b.docs["d"]))
}

func TestDocument_UpdatePersists(t *testing.T) {
	b := newMemBackend()
	doc := NewDocument[int](b, "d", logging.Nop())
	ctx := context.Background()

	require.NoError(t, doc.Update(ctx, func(m map[string]int) error {
		m["a"] = 1
		return nil
	}))

	assert.JSONEq(t, `{"a":1}`, string(b.docs["d"]))

	m, err := doc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, m)
}

func TestDocument_UpdateFnErrorSkipsSave(t *testing.T) {
	b := newMemBackend()
	doc := NewDocument[int](b, "d", logging.Nop())
	sentinel := errors.New("nope")

	err := doc.Update(context.Background(), func(m map[string]int) error {
		m["a"] = 1
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 0, b.saves)
}

func TestDocument_BackendErrorsAreStorageFailures(t *testing.T) {
	ctx := context.Background()

	b := newMemBackend()
	b.loadErr = errors.New("permission denied")
	doc := NewDocument[int](b, "d", logging.Nop())
	_, err := doc.Read(ctx)
	require.ErrorIs(t, err, common.ErrStorage)

	b = newMemBackend()
	b.saveErr = errors.New("read-only file system")
	doc = NewDocument[int](b, "d", logging.Nop())
	err = doc.Update(ctx, func(m map[string]int) error { m["x"] = 1; return nil })
	require.ErrorIs(t, err, common.ErrStorage)
}

func TestDocument_ConcurrentUpdatesAreSerialized(t *testing.T) {
	b := newMemBackend()
	doc := NewDocument[int](b, "d", logging.Nop())
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = doc.Update(ctx, func(m map[string]int) error {
				m[fmt.Sprintf("k%d", i)] = i
				return nil
			})
		}(i)
	}
	wg.Wait()

	m, err := doc.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, m, n)
}
