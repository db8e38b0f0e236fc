// Package store provides the persistence layer for cardsd.
//
// The store package abstracts storage backends so that request handlers never
// touch files or databases directly:
//   - file: whole-document JSON files (cards.json, templates.json)
//   - sqlite: an embedded SQLite database
//   - memory: process memory, seeded once and never persisted
//
// The file and sqlite backends read from disk on every call; nothing is cached
// between calls, so the persisted data is always the source of truth.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/osaxon/nc-tech-test/pkg/card"
)

// Common errors
var (
	ErrNotFound       = errors.New("not found")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Backend represents a storage backend type.
type Backend string

const (
	// BackendFile uses JSON files for storage
	BackendFile Backend = "file"
	// BackendSQLite uses an embedded SQLite database
	BackendSQLite Backend = "sqlite"
	// BackendMemory keeps data in process memory
	BackendMemory Backend = "memory"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendFile, BackendSQLite, BackendMemory:
		return Backend(s), nil
	case "":
		return BackendFile, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// StorageError reports a failure to read, parse or write persisted data.
type StorageError struct {
	Op   string // "read", "parse", "write", "query"
	Path string // file or database path
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return "storage " + e.Op + ": " + e.Err.Error()
	}
	return "storage " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is or wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// CardStore persists cards. Implementations identify cards by Card.ID only.
type CardStore interface {
	// List returns all cards in persisted order.
	List(ctx context.Context) ([]card.Card, error)

	// Get returns the card with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (card.Card, error)

	// Put inserts c, or replaces the card with the same id.
	Put(ctx context.Context, c card.Card) error

	// Delete removes the card with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// ReplaceAll overwrites the whole card list.
	ReplaceAll(ctx context.Context, cards []card.Card) error
}

// TemplateStore reads template reference data.
type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]card.Template, error)
}

// Store combines card and template persistence.
type Store interface {
	CardStore
	TemplateStore
	Close() error
}
