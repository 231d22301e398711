package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/storyboard/pkg/domain"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Document
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Document),
	}
}

// Save persists a deep copy of the document in memory.
func (s *Store) Save(ctx context.Context, artboardID string, doc *domain.Document) error {
	copied := doc.Clone()
	copied.ArtboardID = artboardID

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[artboardID] = &copied
	return nil
}

// Load retrieves a copy of the document, so callers can't mutate the store by pointer.
func (s *Store) Load(ctx context.Context, artboardID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[artboardID]
	if !ok {
		return nil, domain.ErrArtboardNotFound
	}

	ret := doc.Clone()
	return &ret, nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, artboardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, artboardID)
	return nil
}

// List returns stored artboard IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
