package filesearch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, time.April, 5, 12, 0, 0, 0, time.UTC)
}

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestEngine_IngestAndDocuments(t *testing.T) {
	eng := New(WithIDFunc(seqIDs("doc")), WithClock(fixedClock))

	docs, err := eng.Ingest(context.Background(), []Input{
		{Name: "a.txt", Reader: strings.NewReader("hello world")},
		{Name: "b.txt", Size: 1280, Reader: strings.NewReader("second file")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}

	if docs[0].ID != "doc-1" || docs[0].Name != "a.txt" {
		t.Errorf("docs[0] = %s/%s, want doc-1/a.txt", docs[0].ID, docs[0].Name)
	}
	if docs[0].Content != "hello world" {
		t.Errorf("Content = %q, want hello world", docs[0].Content)
	}
	if docs[0].Size != "0.01 KB" {
		t.Errorf("Size = %q, want 0.01 KB", docs[0].Size)
	}
	if docs[0].UploadDate != "Apr 5, 2024" {
		t.Errorf("UploadDate = %q, want Apr 5, 2024", docs[0].UploadDate)
	}
	if docs[1].Size != "1.25 KB" {
		t.Errorf("declared size label = %q, want 1.25 KB", docs[1].Size)
	}

	listed := eng.Documents(context.Background())
	if len(listed) != 2 || listed[0].ID != "doc-1" || listed[1].ID != "doc-2" {
		t.Errorf("Documents() order broken: %+v", listed)
	}
	if eng.Count(context.Background()) != 2 {
		t.Errorf("Count = %d, want 2", eng.Count(context.Background()))
	}
}

func TestEngine_Ingest_Empty(t *testing.T) {
	eng := New()
	docs, err := eng.Ingest(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs != nil {
		t.Errorf("docs = %v, want nil", docs)
	}
	if eng.Count(context.Background()) != 0 {
		t.Errorf("Count = %d, want 0", eng.Count(context.Background()))
	}
}

func TestEngine_Ingest_EmitsEvent(t *testing.T) {
	rec := &recordingNotifier{}
	eng := New(WithNotifier(rec))

	_, err := eng.Ingest(context.Background(), []Input{
		{Name: "a.txt", Reader: strings.NewReader("one")},
		{Name: "b.txt", Reader: strings.NewReader("two")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := rec.Events()
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Kind != EventIngested {
		t.Errorf("Kind = %q, want %q", events[0].Kind, EventIngested)
	}
	if events[0].Description != "2 documents added to your collection" {
		t.Errorf("Description = %q", events[0].Description)
	}
	if events[0].Severity != SeverityInfo {
		t.Errorf("Severity = %q, want info", events[0].Severity)
	}
}

func TestEngine_Ingest_DuplicateID(t *testing.T) {
	rec := &recordingNotifier{}
	eng := New(WithNotifier(rec), WithIDFunc(func() string { return "dup" }))

	_, err := eng.Ingest(context.Background(), []Input{
		{Name: "a.txt"},
		{Name: "b.txt"},
	})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
	if eng.Count(context.Background()) != 0 {
		t.Errorf("rejected batch leaked documents: Count = %d", eng.Count(context.Background()))
	}
	if len(rec.Events()) != 0 {
		t.Errorf("rejected batch emitted events: %+v", rec.Events())
	}
}

func TestEngine_Query(t *testing.T) {
	eng := New(WithIDFunc(seqIDs("doc")), WithClock(fixedClock))
	mustIngest(t, eng, Input{
		Name:   "fox.txt",
		Reader: strings.NewReader("The quick brown fox jumps over the lazy dog"),
	})

	out, err := eng.Query(context.Background(), "FOX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Query != "FOX" {
		t.Errorf("Query = %q, want FOX", out.Query)
	}
	if out.Seq != 0 {
		t.Errorf("Seq = %d, want 0 for one-shot query", out.Seq)
	}
	if len(out.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(out.Results))
	}

	r := out.Results[0]
	if r.DocumentID != "doc-1" || r.DocumentName != "fox.txt" {
		t.Errorf("result = %s/%s, want doc-1/fox.txt", r.DocumentID, r.DocumentName)
	}
	if r.Relevance != 0.9 {
		t.Errorf("Relevance = %v, want 0.9", r.Relevance)
	}
	// Окно покрывает весь короткий текст, рамка из многоточий всегда на месте.
	if r.Snippet != "...The quick brown fox jumps over the lazy dog..." {
		t.Errorf("Snippet = %q", r.Snippet)
	}

	want := "Found 1 matching fragments in your documents. " +
		"The most relevant passage reads: ...The quick brown fox jumps over the lazy dog..."
	if out.Answer != want {
		t.Errorf("Answer = %q, want %q", out.Answer, want)
	}
}

func TestEngine_Query_EmptyRejected(t *testing.T) {
	rec := &recordingNotifier{}
	eng := New(WithNotifier(rec))
	mustIngest(t, eng, Input{Name: "a.txt", Reader: strings.NewReader("text")})

	_, err := eng.Query(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}

	events := rec.Events()
	last := events[len(events)-1]
	if last.Kind != EventQueryRejected {
		t.Errorf("Kind = %q, want %q", last.Kind, EventQueryRejected)
	}
	if last.Description != "empty query" {
		t.Errorf("Description = %q, want empty query", last.Description)
	}
	if last.Severity != SeverityDestructive {
		t.Errorf("Severity = %q, want destructive", last.Severity)
	}
}

func TestEngine_Query_NoDocuments(t *testing.T) {
	rec := &recordingNotifier{}
	eng := New(WithNotifier(rec))

	_, err := eng.Query(context.Background(), "anything")
	if !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("err = %v, want ErrNoDocuments", err)
	}

	events := rec.Events()
	if len(events) != 1 || events[0].Description != "no documents" {
		t.Errorf("events = %+v, want one rejection with reason no documents", events)
	}
}

func TestEngine_Query_NoMatch(t *testing.T) {
	rec := &recordingNotifier{}
	eng := New(WithNotifier(rec))
	mustIngest(t, eng, Input{Name: "a.txt", Reader: strings.NewReader("alpha beta")})

	out, err := eng.Query(context.Background(), "needle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Results) != 0 {
		t.Errorf("Results = %+v, want none", out.Results)
	}
	if out.Answer != "No relevant information found in the uploaded documents." {
		t.Errorf("Answer = %q", out.Answer)
	}
	// A miss is a completed cycle, not a rejection.
	for _, e := range rec.Events() {
		if e.Kind == EventQueryRejected {
			t.Errorf("unexpected rejection event: %+v", e)
		}
	}
}

func TestEngine_Delete(t *testing.T) {
	rec := &recordingNotifier{}
	eng := New(WithNotifier(rec), WithIDFunc(seqIDs("doc")))
	mustIngest(t, eng, Input{Name: "a.txt", Reader: strings.NewReader("text")})

	if !eng.Delete(context.Background(), "doc-1") {
		t.Fatal("Delete returned false for existing document")
	}
	if eng.Count(context.Background()) != 0 {
		t.Errorf("Count = %d, want 0", eng.Count(context.Background()))
	}

	events := rec.Events()
	last := events[len(events)-1]
	if last.Kind != EventDocumentDeleted {
		t.Errorf("Kind = %q, want %q", last.Kind, EventDocumentDeleted)
	}
	if last.Severity != SeverityDestructive {
		t.Errorf("Severity = %q, want destructive", last.Severity)
	}

	// Повторное удаление: no-op без событий.
	before := len(rec.Events())
	if eng.Delete(context.Background(), "doc-1") {
		t.Error("Delete returned true for missing document")
	}
	if len(rec.Events()) != before {
		t.Error("no-op delete emitted an event")
	}
}

func TestEngine_IngestFiles(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "one.txt")
	if err := os.WriteFile(p1, []byte("contents of one"), 0o644); err != nil {
		t.Fatal(err)
	}
	p2 := filepath.Join(dir, "two.txt")
	if err := os.WriteFile(p2, []byte(strings.Repeat("y", 2048)), 0o644); err != nil {
		t.Fatal(err)
	}

	eng := New()
	docs, err := eng.IngestFiles(context.Background(), p1, p2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	if docs[0].Name != "one.txt" || docs[1].Name != "two.txt" {
		t.Errorf("names = %s/%s, want base names", docs[0].Name, docs[1].Name)
	}
	if docs[0].Content != "contents of one" {
		t.Errorf("Content = %q", docs[0].Content)
	}
	if docs[1].Size != "2.00 KB" {
		t.Errorf("Size = %q, want 2.00 KB", docs[1].Size)
	}
}

func TestEngine_IngestFiles_Missing(t *testing.T) {
	eng := New()
	_, err := eng.IngestFiles(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if eng.Count(context.Background()) != 0 {
		t.Errorf("Count = %d, want 0", eng.Count(context.Background()))
	}
}

func TestEngine_WithScorer(t *testing.T) {
	eng := New(WithScorer(constScorer{v: 0.42}))
	mustIngest(t, eng, Input{Name: "a.txt", Reader: strings.NewReader("the needle is here")})

	out, err := eng.Query(context.Background(), "needle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Results[0].Relevance != 0.42 {
		t.Errorf("Relevance = %v, want 0.42", out.Results[0].Relevance)
	}
}

func TestEngine_FrequencyScorer(t *testing.T) {
	eng := New(WithScorer(FrequencyScorer()))
	mustIngest(t, eng, Input{Name: "a.txt", Reader: strings.NewReader("go go go away")})

	out, err := eng.Query(context.Background(), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := out.Results[0].Relevance
	if r <= 0 || r > 1 {
		t.Errorf("Relevance = %v, want in (0, 1]", r)
	}
}

func TestEngine_WithSnippetRadius(t *testing.T) {
	eng := New(WithSnippetRadius(2))
	mustIngest(t, eng, Input{Name: "a.txt", Reader: strings.NewReader("xx needle yy")})

	out, err := eng.Query(context.Background(), "needle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Results[0].Snippet != "...x needle y..." {
		t.Errorf("Snippet = %q, want ...x needle y...", out.Results[0].Snippet)
	}
}

func mustIngest(t *testing.T, eng *Engine, inputs ...Input) {
	t.Helper()
	if _, err := eng.Ingest(context.Background(), inputs); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingNotifier) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

type constScorer struct{ v float64 }

func (c constScorer) Score(string, string, int) float64 { return c.v }
