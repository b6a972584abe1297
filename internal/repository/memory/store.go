package memory

import (
	"context"
	"sync"

	"github.com/pr-poehali-dev/file-search-app/internal/domain"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/document"
)

// Store is an ordered, concurrency-safe in-memory document collection.
// Documents keep insertion order across adds and removals.
type Store struct {
	mu   sync.RWMutex
	docs []document.Document
	ids  map[string]struct{}
}

// New creates an empty store.
func New() *Store {
	return &Store{ids: make(map[string]struct{})}
}

// AddBatch appends a batch in the given order. The whole batch is
// rejected when any id collides with the store or with the batch
// itself; a reader never observes a partially applied batch.
func (s *Store) AddBatch(_ context.Context, docs []document.Document) error {
	if len(docs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(docs))
	for i := range docs {
		id := docs[i].ID()
		if _, ok := s.ids[id]; ok {
			return domain.NewDuplicateID(id)
		}
		if _, ok := seen[id]; ok {
			return domain.NewDuplicateID(id)
		}
		seen[id] = struct{}{}
	}

	s.docs = append(s.docs, docs...)
	for id := range seen {
		s.ids[id] = struct{}{}
	}
	return nil
}

// Remove deletes a document by id. Removing an absent id is a no-op
// and reports false.
func (s *Store) Remove(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; !ok {
		return false
	}
	delete(s.ids, id)
	for i := range s.docs {
		if s.docs[i].ID() == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			break
		}
	}
	return true
}

// List returns all documents in insertion order. The returned slice is
// a copy and stays valid across later mutations.
func (s *Store) List(_ context.Context) []document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]document.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Get returns a document by id.
func (s *Store) Get(_ context.Context, id string) (document.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.ids[id]; !ok {
		return document.Document{}, false
	}
	for i := range s.docs {
		if s.docs[i].ID() == id {
			return s.docs[i], true
		}
	}
	return document.Document{}, false
}

// Len returns the number of stored documents.
func (s *Store) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
