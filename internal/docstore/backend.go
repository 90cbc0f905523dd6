// Package docstore persists named JSON documents that are always read and
// rewritten as a whole.
//
// # Backends
//
// A Backend stores opaque bytes under a document name:
//
//   - FileBackend   one file per document below a root directory (default)
//   - SQLiteBackend one row per document in a "documents" table
//   - BoltBackend   one key per document in a "documents" bucket
//
// # Documents
//
// Document wraps a Backend and a name and exposes the load-mutate-save cycle
// for a JSON object of type map[string]V. The cycle is serialized by a mutex,
// so writers inside one process never lose each other's updates. Separate
// processes sharing the same storage still race with last-writer-wins.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/passkeeper/internal/filex"
)

// ErrDocumentNotFound is returned by Backend.Load for a document that was
// never saved.
var ErrDocumentNotFound = errors.New("document not found")

// Backend stores whole documents by name.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Close() error
}

// Kind selects a Backend implementation.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindBolt   Kind = "bolt"
)

// Options configures Open.
type Options struct {
	Kind Kind
	// Dir is the root for file documents and for a relative DatabaseFile.
	Dir string
	// DatabaseFile is the sqlite or bolt database path.
	DatabaseFile string
}

// Open constructs the backend selected by opts.Kind.
func Open(ctx context.Context, opts Options) (Backend, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	dbPath := opts.DatabaseFile
	if dbPath != "" && !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(dir, dbPath)
	}

	switch opts.Kind {
	case KindFile, "":
		return NewFileBackend(dir), nil
	case KindSQLite:
		if err := filex.EnsureDir(filepath.Dir(dbPath)); err != nil {
			return nil, err
		}
		return OpenSQLite(ctx, dbPath)
	case KindBolt:
		if err := filex.EnsureDir(filepath.Dir(dbPath)); err != nil {
			return nil, err
		}
		return OpenBolt(dbPath)
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Kind)
	}
}
