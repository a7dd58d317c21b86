package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/slatedeck/slatedeck/pkg/slide"
)

// MemoryStore is an in-memory deck store for development and testing.
// Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	decks map[string]slide.Deck
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{decks: make(map[string]slide.Deck)}
}

// Get retrieves a deck by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (slide.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.decks[id]
	if !ok {
		return slide.Deck{}, ErrNotFound
	}
	return d, nil
}

// Put stores a deck.
func (s *MemoryStore) Put(ctx context.Context, d slide.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[d.ID] = d
	return nil
}

// Delete removes a deck.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.decks[id]; !ok {
		return ErrNotFound
	}
	delete(s.decks, id)
	return nil
}

// List returns summaries of all stored decks, sorted by ID for
// deterministic output.
func (s *MemoryStore) List(ctx context.Context) ([]DeckInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]DeckInfo, 0, len(s.decks))
	for _, d := range s.decks {
		infos = append(infos, infoOf(d))
	}
	slices.SortFunc(infos, func(a, b DeckInfo) int { return cmp.Compare(a.ID, b.ID) })
	return infos, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
