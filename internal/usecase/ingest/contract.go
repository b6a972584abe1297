package ingest

import (
	"context"

	"github.com/pr-poehali-dev/file-search-app/internal/domain/document"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/event"
)

// BatchAppender defines the storage contract for ingestion.
type BatchAppender interface {
	AddBatch(ctx context.Context, docs []document.Document) error
}

// Notifier delivers user-facing events.
type Notifier interface {
	Notify(ctx context.Context, e event.Event)
}
