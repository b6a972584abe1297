package document

import (
	"context"

	domdoc "github.com/pr-poehali-dev/file-search-app/internal/domain/document"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/event"
)

// Service exposes the read and delete side of the document collection.
type Service struct {
	catalog  Catalog
	notifier Notifier
}

// New creates a document service.
func New(catalog Catalog, notifier Notifier) *Service {
	return &Service{catalog: catalog, notifier: notifier}
}

// List returns stored documents in insertion order.
func (s *Service) List(ctx context.Context) []domdoc.Document {
	return s.catalog.List(ctx)
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, bool) {
	return s.catalog.Get(ctx, id)
}

// Count returns the number of stored documents.
func (s *Service) Count(ctx context.Context) int {
	return s.catalog.Len(ctx)
}

// Delete removes a document by id and notifies subscribers. Deleting an
// absent id is a no-op that reports false and emits nothing.
func (s *Service) Delete(ctx context.Context, id string) bool {
	if !s.catalog.Remove(ctx, id) {
		return false
	}
	s.notifier.Notify(ctx, event.NewDocumentDeleted())
	return true
}
