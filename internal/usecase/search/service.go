package search

import (
	"context"

	"github.com/pr-poehali-dev/file-search-app/internal/domain"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/event"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/search/answer"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/search/query"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/search/result"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/search/snippet"
)

// Service matches queries against the document collection and
// synthesizes the reply.
type Service struct {
	docs     DocumentLister
	notifier Notifier
	scorer   Scorer
	radius   int
}

// New creates a search service with uniform scoring.
func New(docs DocumentLister, notifier Notifier) *Service {
	return &Service{
		docs:     docs,
		notifier: notifier,
		scorer:   UniformScorer{Relevance: DefaultRelevance},
		radius:   snippet.DefaultRadius,
	}
}

// WithScorer overrides relevance scoring.
func (s *Service) WithScorer(sc Scorer) *Service {
	if sc != nil {
		s.scorer = sc
	}
	return s
}

// WithSnippetRadius overrides the snippet context window.
func (s *Service) WithSnippetRadius(r int) *Service {
	if r > 0 {
		s.radius = r
	}
	return s
}

// Validate checks a raw query against the collection state. Rejections
// emit a query_rejected event and return a sentinel error; a rejected
// query never reaches matching.
func (s *Service) Validate(ctx context.Context, raw string) (query.Query, error) {
	q, err := query.New(raw)
	if err != nil {
		s.notifier.Notify(ctx, event.NewQueryRejected(err.Error()))
		return query.Query{}, err
	}
	if s.docs.Len(ctx) == 0 {
		s.notifier.Notify(ctx, event.NewQueryRejected(domain.ErrNoDocuments.Error()))
		return query.Query{}, domain.ErrNoDocuments
	}
	return q, nil
}

// Run matches a validated query against every document in store order.
// Each document contributes at most one result, built around its first
// case-insensitive occurrence of the query.
func (s *Service) Run(ctx context.Context, q query.Query) ([]result.Result, string) {
	docs := s.docs.List(ctx)

	var results []result.Result
	for i := range docs {
		idx := snippet.Locate(docs[i].Content(), q.Raw())
		if idx < 0 {
			continue
		}
		snip := snippet.Extract(docs[i].Content(), idx, q.RuneLen(), s.radius)
		score := s.scorer.Score(docs[i].Content(), q.Raw(), idx)
		results = append(results, result.New(docs[i].ID(), docs[i].Name(), snip, score))
	}

	return results, answer.Synthesize(results)
}

// Execute runs the full cycle: validation, matching, synthesis.
func (s *Service) Execute(ctx context.Context, raw string) ([]result.Result, string, error) {
	q, err := s.Validate(ctx, raw)
	if err != nil {
		return nil, "", err
	}
	results, reply := s.Run(ctx, q)
	return results, reply, nil
}
