package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pr-poehali-dev/file-search-app/internal/domain/document"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/event"
	"github.com/pr-poehali-dev/file-search-app/internal/logger"
)

// DefaultConcurrency caps parallel file decodes.
const DefaultConcurrency = 4

// Service turns a batch of file inputs into stored documents. Decoding
// runs concurrently; the store mutation is a single atomic append.
type Service struct {
	store       BatchAppender
	notifier    Notifier
	concurrency int
	newID       func() string
	now         func() time.Time
}

// New creates an ingest service.
func New(store BatchAppender, notifier Notifier) *Service {
	return &Service{
		store:       store,
		notifier:    notifier,
		concurrency: DefaultConcurrency,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// WithConcurrency overrides the decode parallelism cap.
func (s *Service) WithConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// WithIDFunc overrides document id generation.
func (s *Service) WithIDFunc(fn func() string) *Service {
	if fn != nil {
		s.newID = fn
	}
	return s
}

// WithClock overrides the upload-date clock.
func (s *Service) WithClock(fn func() time.Time) *Service {
	if fn != nil {
		s.now = fn
	}
	return s
}

// Ingest decodes every input and appends the whole batch to the store.
// Results keep input order regardless of decode completion order. On
// any error the store is left untouched; on success a single ingested
// event is emitted for the batch.
func (s *Service) Ingest(ctx context.Context, inputs []Input) ([]document.Document, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	type decoded struct {
		content string
		bytes   int
	}
	texts := make([]decoded, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range inputs {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			content, n := decode(gctx, inputs[i])
			texts[i] = decoded{content: content, bytes: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}

	docs := make([]document.Document, len(inputs))
	uploadDate := document.FormatUploadDate(s.now())
	for i, in := range inputs {
		size := in.Size
		if size <= 0 {
			size = int64(texts[i].bytes)
		}
		doc, err := document.New(
			s.newID(), in.Name, texts[i].content,
			document.SizeLabel(size), uploadDate,
		)
		if err != nil {
			return nil, fmt.Errorf("build document %q: %w", in.Name, err)
		}
		docs[i] = doc
	}

	// The batch becomes visible in one step or not at all.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("store batch: %w", err)
	}
	if err := s.store.AddBatch(ctx, docs); err != nil {
		return nil, fmt.Errorf("store batch: %w", err)
	}

	s.notifier.Notify(ctx, event.NewIngested(len(docs)))
	return docs, nil
}

// decode reads an input as text. Reads are best effort: a failed read
// keeps whatever bytes arrived, a nil reader yields empty content, and
// non-UTF-8 bytes pass through as-is.
func decode(ctx context.Context, in Input) (string, int) {
	if in.Reader == nil {
		return "", 0
	}

	data, err := io.ReadAll(in.Reader)
	if c, ok := in.Reader.(io.Closer); ok {
		_ = c.Close()
	}
	if err != nil {
		logger.FromContext(ctx).Warn("file read failed, keeping partial content",
			zap.String("file", in.Name),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
	}
	return string(data), len(data)
}
