package filesearch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pr-poehali-dev/file-search-app/internal/domain"
	"github.com/pr-poehali-dev/file-search-app/internal/logger"
	"github.com/pr-poehali-dev/file-search-app/internal/metrics"
)

// CycleState names the phase of the active query cycle.
type CycleState int32

// Query cycle states.
const (
	StateIdle CycleState = iota
	StateValidating
	StateMatching
	StateSynthesizing
)

func (s CycleState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateMatching:
		return "matching"
	case StateSynthesizing:
		return "synthesizing"
	default:
		return "unknown"
	}
}

// Session runs query cycles asynchronously for one consumer. Each
// submission gets a monotonically increasing sequence number; a cycle
// that finishes after a newer submission was accepted is dropped, so a
// slow old query can never overwrite a newer answer.
type Session struct {
	eng      *Engine
	seq      atomic.Uint64
	state    atomic.Int32
	mu       sync.RWMutex
	closed   bool
	wg       sync.WaitGroup
	outcomes chan Outcome
}

// NewSession opens a query session.
func (e *Engine) NewSession() *Session {
	return &Session{eng: e, outcomes: make(chan Outcome, 1)}
}

// Outcomes delivers completed, still-current query cycles. The channel
// closes after Close once in-flight work finishes.
func (s *Session) Outcomes() <-chan Outcome {
	return s.outcomes
}

// State reports the phase of the current cycle, best effort.
func (s *Session) State() CycleState {
	return CycleState(s.state.Load())
}

// Seq returns the sequence number of the latest submission.
func (s *Session) Seq() uint64 {
	return s.seq.Load()
}

// Submit starts a query cycle and returns its sequence number.
// Validation runs synchronously so rejections surface immediately;
// matching and synthesis run in the background and the outcome arrives
// on Outcomes unless a newer submission supersedes it. A rejected
// submission returns 0 and never supersedes an in-flight cycle.
func (s *Session) Submit(ctx context.Context, raw string) (uint64, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return 0, fmt.Errorf("submit: %w", domain.ErrSessionClosed)
	}

	ctx = logger.ContextWithLogger(ctx, s.eng.log)
	start := time.Now()

	s.state.Store(int32(StateValidating))
	q, err := s.eng.searchSvc.Validate(ctx, raw)
	if err != nil {
		s.state.Store(int32(StateIdle))
		s.mu.RUnlock()
		metrics.QueriesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		metrics.QueryDuration.Observe(time.Since(start).Seconds())
		s.eng.log.Info("query rejected", zap.String("reason", err.Error()))
		return 0, fmt.Errorf("submit: %w", err)
	}

	// Only accepted queries advance the sequence. wg.Add happens under
	// the same lock that Close takes, so Close cannot start waiting
	// between the closed check and here.
	cycle := s.seq.Add(1)
	s.state.Store(int32(StateMatching))
	s.wg.Add(1)
	s.mu.RUnlock()

	go func() {
		defer s.wg.Done()

		results, reply := s.eng.searchSvc.Run(ctx, q)
		s.setState(cycle, StateSynthesizing)

		outcome := metrics.OutcomeAnswered
		if len(results) == 0 {
			outcome = metrics.OutcomeEmpty
		}
		metrics.QueriesTotal.WithLabelValues(outcome).Inc()
		metrics.QueryDuration.Observe(time.Since(start).Seconds())

		s.deliver(Outcome{
			Seq:     cycle,
			Query:   raw,
			Results: fromResults(results),
			Answer:  reply,
		})
		s.setState(cycle, StateIdle)

		s.eng.log.Info("query completed",
			zap.Uint64("cycle", cycle),
			zap.String("outcome", outcome),
			zap.Int("results", len(results)),
			zap.Duration("took", time.Since(start)),
		)
	}()

	return cycle, nil
}

// setState updates the visible phase only while cycle is still the
// latest submission. A superseded cycle must not flip the state.
func (s *Session) setState(cycle uint64, st CycleState) {
	if s.seq.Load() == cycle {
		s.state.Store(int32(st))
	}
}

// deliver hands an outcome to the reader unless a newer cycle was
// submitted meanwhile. A stale outcome still queued in the buffer is
// evicted so the newer one takes its place.
func (s *Session) deliver(o Outcome) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	for {
		if latest := s.seq.Load(); latest != o.Seq {
			s.eng.log.Debug("stale cycle dropped",
				zap.Uint64("cycle", o.Seq),
				zap.Uint64("latest", latest),
			)
			return
		}
		select {
		case s.outcomes <- o:
			return
		default:
		}
		select {
		case <-s.outcomes:
		default:
		}
	}
}

// Close rejects further submissions and closes Outcomes once the
// in-flight cycle finishes. Close is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	// Every sender registered with wg before closed was set, so the
	// channel closes only after the last in-flight deliver returns.
	go func() {
		s.wg.Wait()
		close(s.outcomes)
	}()
}
