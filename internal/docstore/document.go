package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
)

// Document is a JSON object keyed by string, persisted as a whole under a
// single name.
type Document[V any] struct {
	mu      sync.Mutex
	backend Backend
	name    string
	log     logging.Logger
}

func NewDocument[V any](backend Backend, name string, log logging.Logger) *Document[V] {
	return &Document[V]{
		backend: backend,
		name:    name,
		log:     log.With("document", name),
	}
}

// Read returns the current content. The result is never nil.
func (d *Document[V]) Read(ctx context.Context) (map[string]V, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx)
}

// Update loads the document, passes it to fn and saves the result when fn
// returns nil. An error from fn is returned as is and nothing is written.
func (d *Document[V]) Update(ctx context.Context, fn func(m map[string]V) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	m, err := d.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(m); err != nil {
		return err
	}
	return d.save(ctx, m)
}

// load treats a missing or undecodable document as empty and skips entries
// that do not decode as V. Backend read failures are reported as
// common.ErrStorage.
func (d *Document[V]) load(ctx context.Context) (map[string]V, error) {
	data, err := d.backend.Load(ctx, d.name)
	if errors.Is(err, ErrDocumentNotFound) {
		return map[string]V{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", common.ErrStorage, d.name, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		d.log.Warn(ctx, "document is not valid JSON, starting from an empty one", "error", err)
		return map[string]V{}, nil
	}

	// Entries are decoded one by one so a malformed entry only drops itself.
	m := make(map[string]V, len(raw))
	for key, body := range raw {
		var v V
		if err := json.Unmarshal(body, &v); err != nil {
			d.log.Warn(ctx, "skipping malformed entry", "key", key, "error", err)
			continue
		}
		m[key] = v
	}
	return m, nil
}

func (d *Document[V]) save(ctx context.Context, m map[string]V) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", common.ErrStorage, d.name, err)
	}
	if err := d.backend.Save(ctx, d.name, data); err != nil {
		d.log.Error(ctx, "failed to save document", "error", err)
		return fmt.Errorf("%w: save %s: %v", common.ErrStorage, d.name, err)
	}
	return nil
}
