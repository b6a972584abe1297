package document

import (
	"context"

	domdoc "github.com/pr-poehali-dev/file-search-app/internal/domain/document"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/event"
)

// Catalog defines the storage contract for the document collection.
type Catalog interface {
	List(ctx context.Context) []domdoc.Document
	Get(ctx context.Context, id string) (domdoc.Document, bool)
	Remove(ctx context.Context, id string) bool
	Len(ctx context.Context) int
}

// Notifier delivers user-facing events.
type Notifier interface {
	Notify(ctx context.Context, e event.Event)
}
