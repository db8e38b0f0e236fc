// Package file provides a file-based implementation of the store interfaces.
// Cards and templates are kept as whole JSON documents which are read in full
// on every call and rewritten in full on every change.
package file

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osaxon/nc-tech-test/pkg/card"
	"github.com/osaxon/nc-tech-test/pkg/logging"
	"github.com/osaxon/nc-tech-test/pkg/store"
)

// Default file names inside the data directory.
const (
	DefaultCardsFile     = "cards.json"
	DefaultTemplatesFile = "templates.json"
)

// Config locates the data files.
type Config struct {
	// DataDir holds the data files. Defaults to the working directory.
	DataDir string

	// CardsFile overrides the card document path. Relative paths are resolved
	// against DataDir.
	CardsFile string

	// TemplatesFile overrides the template document path. Relative paths are
	// resolved against DataDir.
	TemplatesFile string
}

// CardsPath returns the resolved card document path.
func (c Config) CardsPath() string {
	return c.resolve(c.CardsFile, DefaultCardsFile)
}

// TemplatesPath returns the resolved template document path.
func (c Config) TemplatesPath() string {
	return c.resolve(c.TemplatesFile, DefaultTemplatesFile)
}

func (c Config) resolve(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// FileStore implements store.Store using JSON files.
//
// FileStore does no locking of its own. Put and Delete are read-modify-write
// sequences, so concurrent writers must be serialized by the caller; writers
// in separate processes race and the last write wins.
type FileStore struct {
	cardsPath     string
	templatesPath string
	log           *slog.Logger
}

var _ store.Store = (*FileStore)(nil)

// New creates a new FileStore with the given configuration.
func New(cfg Config) *FileStore {
	return &FileStore{
		cardsPath:     cfg.CardsPath(),
		templatesPath: cfg.TemplatesPath(),
		log:           logging.Nop(),
	}
}

// SetLogger sets the logger used for write diagnostics.
func (s *FileStore) SetLogger(log *slog.Logger) {
	if log != nil {
		s.log = log
	}
}

// CardsPath returns the card document path.
func (s *FileStore) CardsPath() string { return s.cardsPath }

// TemplatesPath returns the template document path.
func (s *FileStore) TemplatesPath() string { return s.templatesPath }

// Close is a no-op; files are not held open between calls.
func (s *FileStore) Close() error { return nil }

// List loads and parses the full card list.
func (s *FileStore) List(ctx context.Context) ([]card.Card, error) {
	var cards []card.Card
	if err := readJSON(s.cardsPath, &cards); err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []card.Card{}
	}
	return cards, nil
}

// ListTemplates loads and parses the full template list.
func (s *FileStore) ListTemplates(ctx context.Context) ([]card.Template, error) {
	var templates []card.Template
	if err := readJSON(s.templatesPath, &templates); err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []card.Template{}
	}
	return templates, nil
}

// Get returns a single card by id.
func (s *FileStore) Get(ctx context.Context, id string) (card.Card, error) {
	cards, err := s.List(ctx)
	if err != nil {
		return card.Card{}, err
	}
	for _, c := range cards {
		if c.ID == id {
			return c, nil
		}
	}
	return card.Card{}, store.ErrNotFound
}

// Put appends c, or replaces the card with the same id in place.
func (s *FileStore) Put(ctx context.Context, c card.Card) error {
	cards, err := s.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range cards {
		if cards[i].ID == c.ID {
			cards[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		cards = append(cards, c)
	}
	return s.ReplaceAll(ctx, cards)
}

// Delete removes the card with the given id.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	cards, err := s.List(ctx)
	if err != nil {
		return err
	}
	remaining := make([]card.Card, 0, len(cards))
	for _, c := range cards {
		if c.ID != id {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == len(cards) {
		return store.ErrNotFound
	}
	return s.ReplaceAll(ctx, remaining)
}

// ReplaceAll serializes cards and overwrites the card document.
func (s *FileStore) ReplaceAll(ctx context.Context, cards []card.Card) error {
	if cards == nil {
		cards = []card.Card{}
	}
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return &store.StorageError{Op: "encode", Path: s.cardsPath, Err: err}
	}
	if err := writeAtomic(s.cardsPath, data); err != nil {
		s.log.Error("failed to write cards", "path", s.cardsPath, "error", err)
		return &store.StorageError{Op: "write", Path: s.cardsPath, Err: err}
	}
	s.log.Debug("cards written", "path", s.cardsPath, "count", len(cards))
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &store.StorageError{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &store.StorageError{Op: "parse", Path: path, Err: err}
	}
	return nil
}

// writeAtomic writes data to a uniquely named temp file next to path, then
// renames it over path so readers never observe a partial document, even when
// several processes write the same file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpFile := tmp.Name()
	defer func() { _ = os.Remove(tmpFile) }() // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}
