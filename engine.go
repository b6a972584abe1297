package filesearch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pr-poehali-dev/file-search-app/internal/domain/event"
	"github.com/pr-poehali-dev/file-search-app/internal/logger"
	"github.com/pr-poehali-dev/file-search-app/internal/metrics"
	"github.com/pr-poehali-dev/file-search-app/internal/repository/memory"
	documentuc "github.com/pr-poehali-dev/file-search-app/internal/usecase/document"
	ingestuc "github.com/pr-poehali-dev/file-search-app/internal/usecase/ingest"
	searchuc "github.com/pr-poehali-dev/file-search-app/internal/usecase/search"
)

// Engine is the file search entry point: an in-memory document
// collection with concurrent ingestion, substring matching, and
// lifecycle notifications.
type Engine struct {
	ingestSvc *ingestuc.Service
	searchSvc *searchuc.Service
	docSvc    *documentuc.Service
	events    eventSink
	log       *zap.Logger
}

// eventSink is the internal notification contract the usecases consume.
type eventSink interface {
	Notify(ctx context.Context, e event.Event)
}

type engineConfig struct {
	log         *zap.Logger
	notifier    Notifier
	scorer      Scorer
	radius      int
	concurrency int
	newID       func() string
	now         func() time.Time
}

// Option configures the engine.
type Option func(*engineConfig)

// WithLogger sets the engine logger (no-op by default).
func WithLogger(l *zap.Logger) Option {
	return func(c *engineConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithNotifier subscribes a notifier to collection and query events.
func WithNotifier(n Notifier) Option {
	return func(c *engineConfig) { c.notifier = n }
}

// WithScorer overrides relevance scoring for matches.
func WithScorer(s Scorer) Option {
	return func(c *engineConfig) { c.scorer = s }
}

// WithSnippetRadius sets the context window kept on each side of a match.
func WithSnippetRadius(r int) Option {
	return func(c *engineConfig) { c.radius = r }
}

// WithConcurrency caps parallel file decodes during ingestion.
func WithConcurrency(n int) Option {
	return func(c *engineConfig) { c.concurrency = n }
}

// WithIDFunc overrides document id generation.
func WithIDFunc(fn func() string) Option {
	return func(c *engineConfig) { c.newID = fn }
}

// WithClock overrides the upload-date clock.
func WithClock(fn func() time.Time) Option {
	return func(c *engineConfig) { c.now = fn }
}

// UniformScorer returns the default scorer: every match gets the same
// fixed relevance.
func UniformScorer() Scorer {
	return searchuc.UniformScorer{Relevance: searchuc.DefaultRelevance}
}

// FrequencyScorer returns a scorer that rewards occurrence density and
// early matches.
func FrequencyScorer() Scorer {
	return searchuc.FrequencyScorer{}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	cfg := &engineConfig{log: zap.NewNop()}
	for _, o := range opts {
		o(cfg)
	}

	var events eventSink = noopSink{}
	if cfg.notifier != nil {
		events = &notifierAdapter{inner: cfg.notifier}
	}

	store := memory.New()

	ingestSvc := ingestuc.New(store, events)
	if cfg.concurrency > 0 {
		ingestSvc = ingestSvc.WithConcurrency(cfg.concurrency)
	}
	if cfg.newID != nil {
		ingestSvc = ingestSvc.WithIDFunc(cfg.newID)
	}
	if cfg.now != nil {
		ingestSvc = ingestSvc.WithClock(cfg.now)
	}

	searchSvc := searchuc.New(store, events)
	if cfg.scorer != nil {
		searchSvc = searchSvc.WithScorer(cfg.scorer)
	}
	if cfg.radius > 0 {
		searchSvc = searchSvc.WithSnippetRadius(cfg.radius)
	}

	return &Engine{
		ingestSvc: ingestSvc,
		searchSvc: searchSvc,
		docSvc:    documentuc.New(store, events),
		events:    events,
		log:       cfg.log,
	}
}

// Ingest decodes and stores a batch of inputs, returning the stored
// documents in input order.
func (e *Engine) Ingest(ctx context.Context, inputs []Input) ([]Document, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	ctx = logger.ContextWithLogger(ctx, e.log)
	ctx = logger.With(ctx, zap.Int("batch", len(inputs)))
	start := time.Now()

	docs, err := e.ingestSvc.Ingest(ctx, toInternalInputs(inputs))
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	metrics.DocumentsIngestedTotal.Add(float64(len(docs)))
	metrics.IngestDuration.Observe(time.Since(start).Seconds())
	e.log.Info("batch ingested",
		zap.Int("documents", len(docs)),
		zap.Duration("took", time.Since(start)),
	)
	return fromDocuments(docs), nil
}

// IngestFiles reads files from disk and ingests them as one batch.
func (e *Engine) IngestFiles(ctx context.Context, paths ...string) ([]Document, error) {
	inputs := make([]Input, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(filepath.Clean(p))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		inputs = append(inputs, Input{
			Name:   filepath.Base(p),
			Size:   int64(len(data)),
			Reader: bytes.NewReader(data),
		})
	}
	return e.Ingest(ctx, inputs)
}

// Query runs one synchronous search cycle.
func (e *Engine) Query(ctx context.Context, raw string) (Outcome, error) {
	ctx = logger.ContextWithLogger(ctx, e.log)
	start := time.Now()

	results, reply, err := e.searchSvc.Execute(ctx, raw)
	metrics.QueryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		e.log.Info("query rejected", zap.String("reason", err.Error()))
		return Outcome{}, fmt.Errorf("query: %w", err)
	}

	outcome := metrics.OutcomeAnswered
	if len(results) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.QueriesTotal.WithLabelValues(outcome).Inc()
	e.log.Info("query completed",
		zap.String("outcome", outcome),
		zap.Int("results", len(results)),
		zap.Duration("took", time.Since(start)),
	)

	return Outcome{Query: raw, Results: fromResults(results), Answer: reply}, nil
}

// Documents lists stored documents in insertion order.
func (e *Engine) Documents(ctx context.Context) []Document {
	return fromDocuments(e.docSvc.List(ctx))
}

// Count returns the number of stored documents.
func (e *Engine) Count(ctx context.Context) int {
	return e.docSvc.Count(ctx)
}

// Delete removes a document by id. Deleting an unknown id is a no-op
// that reports false and notifies nothing.
func (e *Engine) Delete(ctx context.Context, id string) bool {
	if !e.docSvc.Delete(ctx, id) {
		return false
	}

	metrics.DocumentsDeletedTotal.Inc()
	e.log.Info("document deleted", zap.String("id", id))
	return true
}

// notifierAdapter bridges a public Notifier to the internal event contract.
type notifierAdapter struct {
	inner Notifier
}

func (a *notifierAdapter) Notify(ctx context.Context, e event.Event) {
	a.inner.Notify(ctx, fromEvent(e))
}

// noopSink swallows events when no notifier is configured.
type noopSink struct{}

func (noopSink) Notify(context.Context, event.Event) {}
