package filesearch

import (
	"context"
	"io"

	"github.com/pr-poehali-dev/file-search-app/internal/domain/document"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/event"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/search/result"
	ingestuc "github.com/pr-poehali-dev/file-search-app/internal/usecase/ingest"
)

// Input is one file handed to ingestion. Size is the declared byte
// count; zero derives it from the decoded content.
type Input struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// BytesInput wraps in-memory content as an Input.
func BytesInput(name string, data []byte) Input {
	in := ingestuc.BytesInput(name, data)
	return Input{Name: in.Name, Size: in.Size, Reader: in.Reader}
}

// FileInput wraps a file path as an Input opened lazily on first read.
func FileInput(path string) Input {
	in := ingestuc.FileInput(path)
	return Input{Name: in.Name, Size: in.Size, Reader: in.Reader}
}

// Document describes a stored file.
type Document struct {
	ID         string
	Name       string
	Content    string
	Size       string // human-readable label, e.g. "1.25 KB"
	UploadDate string // e.g. "Apr 5, 2024"
}

// Result is one matched document.
type Result struct {
	DocumentID   string
	DocumentName string
	Snippet      string
	Relevance    float64
}

// Outcome is a completed query cycle.
type Outcome struct {
	Seq     uint64 // session cycle number; 0 for one-shot queries
	Query   string
	Results []Result
	Answer  string
}

// Severity drives the visual treatment of a notification.
type Severity string

// Notification severities.
const (
	SeverityInfo        Severity = "info"
	SeverityDestructive Severity = "destructive"
)

// Event kinds.
const (
	EventIngested        = "ingested"
	EventQueryRejected   = "query_rejected"
	EventDocumentDeleted = "document_deleted"
)

// Event is a user-facing notification about a collection change or a
// rejected query.
type Event struct {
	Kind        string
	Title       string
	Description string
	Severity    Severity
}

// Notifier receives collection and query lifecycle events.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// Scorer assigns a relevance in (0, 1] to a matched document.
// matchIndex is the character index of the first match.
type Scorer interface {
	Score(content, query string, matchIndex int) float64
}

func toInternalInputs(inputs []Input) []ingestuc.Input {
	out := make([]ingestuc.Input, len(inputs))
	for i, in := range inputs {
		out[i] = ingestuc.Input{Name: in.Name, Size: in.Size, Reader: in.Reader}
	}
	return out
}

func fromDocuments(docs []document.Document) []Document {
	out := make([]Document, len(docs))
	for i := range docs {
		out[i] = Document{
			ID:         docs[i].ID(),
			Name:       docs[i].Name(),
			Content:    docs[i].Content(),
			Size:       docs[i].Size(),
			UploadDate: docs[i].UploadDate(),
		}
	}
	return out
}

func fromResults(results []result.Result) []Result {
	out := make([]Result, len(results))
	for i := range results {
		out[i] = Result{
			DocumentID:   results[i].DocumentID(),
			DocumentName: results[i].DocumentName(),
			Snippet:      results[i].Snippet(),
			Relevance:    results[i].Relevance(),
		}
	}
	return out
}

func fromEvent(e event.Event) Event {
	return Event{
		Kind:        string(e.Kind()),
		Title:       e.Title(),
		Description: e.Description(),
		Severity:    Severity(e.Severity()),
	}
}
