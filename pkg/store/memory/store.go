// Package memory provides a thread-safe in-memory implementation of the
// store interfaces. Nothing is persisted; it is meant for tests and for
// throwaway servers seeded from a dataset at startup.
package memory

import (
	"context"
	"sync"

	"github.com/osaxon/nc-tech-test/pkg/card"
	"github.com/osaxon/nc-tech-test/pkg/store"
)

// Store keeps cards in insertion order and templates as given.
type Store struct {
	mu        sync.RWMutex
	cards     []card.Card
	templates []card.Template
}

var _ store.Store = (*Store)(nil)

// New creates a Store holding copies of cards and templates.
func New(cards []card.Card, templates []card.Template) *Store {
	return &Store{
		cards:     cloneCards(cards),
		templates: append([]card.Template{}, templates...),
	}
}

// List returns a copy of all cards.
func (s *Store) List(ctx context.Context) ([]card.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCards(s.cards), nil
}

// Get retrieves a card by id.
func (s *Store) Get(ctx context.Context, id string) (card.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.cards[i].Clone(), nil
	}
	return card.Card{}, store.ErrNotFound
}

// Put appends c, or replaces the card with the same id in place.
func (s *Store) Put(ctx context.Context, c card.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(c.ID); i >= 0 {
		s.cards[i] = c.Clone()
		return nil
	}
	s.cards = append(s.cards, c.Clone())
	return nil
}

// Delete removes a card by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return store.ErrNotFound
	}
	s.cards = append(s.cards[:i], s.cards[i+1:]...)
	return nil
}

// ReplaceAll overwrites the card list.
func (s *Store) ReplaceAll(ctx context.Context, cards []card.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = cloneCards(cards)
	return nil
}

// ListTemplates returns a copy of all templates.
func (s *Store) ListTemplates(ctx context.Context) ([]card.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]card.Template{}, s.templates...), nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func (s *Store) indexOf(id string) int {
	for i := range s.cards {
		if s.cards[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneCards(cards []card.Card) []card.Card {
	out := make([]card.Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}
