package search

import (
	"context"

	"github.com/pr-poehali-dev/file-search-app/internal/domain/document"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/event"
)

// DocumentLister reads the collection for matching.
type DocumentLister interface {
	List(ctx context.Context) []document.Document
	Len(ctx context.Context) int
}

// Notifier delivers user-facing events.
type Notifier interface {
	Notify(ctx context.Context, e event.Event)
}

// Scorer assigns a relevance in (0, 1] to a matched document.
// matchIndex is the character index of the first occurrence.
type Scorer interface {
	Score(content, query string, matchIndex int) float64
}
