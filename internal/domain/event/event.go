package event

import "fmt"

// Severity drives the visual treatment of a notification.
type Severity string

// Severity constants.
const (
	SeverityInfo        Severity = "info"
	SeverityDestructive Severity = "destructive"
)

// IsValid checks if the severity is one of the supported values.
func (s Severity) IsValid() bool {
	return s == SeverityInfo || s == SeverityDestructive
}

// Kind identifies the lifecycle moment an event reports.
type Kind string

// Event kind constants.
const (
	KindIngested        Kind = "ingested"
	KindQueryRejected   Kind = "query_rejected"
	KindDocumentDeleted Kind = "document_deleted"
)

// Event is a user-facing notification about a collection change or a
// rejected query.
type Event struct {
	kind        Kind
	title       string
	description string
	severity    Severity
}

// NewIngested reports a completed ingestion batch.
func NewIngested(count int) Event {
	noun := "documents"
	if count == 1 {
		noun = "document"
	}
	return Event{
		kind:        KindIngested,
		title:       "Files uploaded",
		description: fmt.Sprintf("%d %s added to your collection", count, noun),
		severity:    SeverityInfo,
	}
}

// NewQueryRejected reports a query that never reached matching.
// The reason text is kept verbatim so callers can surface it.
func NewQueryRejected(reason string) Event {
	return Event{
		kind:        KindQueryRejected,
		title:       "Search rejected",
		description: reason,
		severity:    SeverityDestructive,
	}
}

// NewDocumentDeleted reports a document removed from the collection.
func NewDocumentDeleted() Event {
	return Event{
		kind:        KindDocumentDeleted,
		title:       "Document deleted",
		description: "The document was removed from your collection",
		severity:    SeverityDestructive,
	}
}

// Kind returns the event kind.
func (e Event) Kind() Kind { return e.kind }

// Title returns the short headline.
func (e Event) Title() string { return e.title }

// Description returns the detail line.
func (e Event) Description() string { return e.description }

// Severity returns the visual severity.
func (e Event) Severity() Severity { return e.severity }
