// Package search orchestrates snapshot fetches and the pure scoring core.
package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/paperfind/paperfind/internal/domain/corpus"
	"github.com/paperfind/paperfind/internal/domain/paper"
	"github.com/paperfind/paperfind/internal/domain/search/filter"
	"github.com/paperfind/paperfind/internal/domain/search/result"
	"github.com/paperfind/paperfind/internal/domain/search/sortmode"
	"github.com/paperfind/paperfind/internal/metrics"
	"github.com/paperfind/paperfind/internal/relevance"
	"github.com/paperfind/paperfind/internal/snippet"
	"github.com/paperfind/paperfind/internal/suggest"
	"github.com/paperfind/paperfind/internal/vocab"
)

// Outcome is one completed search invocation.
type Outcome struct {
	Results       []result.ScoredPaper
	Total         int
	FetchDuration time.Duration
	SessionID     string
	// DidYouMean holds correction candidates; populated only on zero results.
	DidYouMean []string
}

// Service runs searches over cached corpus snapshots. All scoring is
// delegated to the pure core; the service owns snapshot fan-in, the
// additive vocabulary accumulator, supersession of in-flight searches,
// and telemetry emission.
type Service struct {
	papers    PaperSource
	profiles  ProfileSource
	ratings   RatingSource
	telemetry TelemetrySink
	engine    *relevance.Engine
	phrases   snippet.Weights
	logger    *zap.Logger
	sessionID string

	mu         sync.Mutex
	snap       *corpus.Snapshot
	vocabulary vocab.Vocabulary
	cancelPrev context.CancelFunc
}

// New creates a search service. telemetry may be nil.
func New(
	papers PaperSource,
	profiles ProfileSource,
	ratings RatingSource,
	telemetry TelemetrySink,
	weights relevance.Weights,
	phrases snippet.Weights,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		papers:     papers,
		profiles:   profiles,
		ratings:    ratings,
		telemetry:  telemetry,
		engine:     relevance.New(weights),
		phrases:    phrases,
		logger:     logger,
		sessionID:  uuid.NewString(),
		vocabulary: vocab.New(),
	}
}

// Search runs a full relevance search. A newer invocation supersedes any
// in-flight one: the older snapshot fetch is canceled and its results
// discarded by its caller.
func (s *Service) Search(
	ctx context.Context, query string, f filter.Filter, mode sortmode.Mode,
) (Outcome, error) {
	ctx, cancel := s.supersede(ctx)
	defer cancel()

	if !mode.IsValid() {
		mode = sortmode.Default
	}
	start := time.Now()

	snap, fetchDur, err := s.snapshot(ctx)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(mode), "error").Inc()
		return Outcome{}, err
	}

	hits := s.engine.Search(query, snap, f, mode)

	out := Outcome{
		Results:       hits,
		Total:         len(hits),
		FetchDuration: fetchDur,
		SessionID:     s.sessionID,
	}
	if len(hits) == 0 && query != "" {
		out.DidYouMean = suggest.DidYouMean(query, s.currentVocabulary(), 5)
		if len(out.DidYouMean) > 0 {
			metrics.CorrectionsTotal.WithLabelValues("did_you_mean").Inc()
		}
	}

	outcome := "hit"
	if len(hits) == 0 {
		outcome = "empty"
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(mode), outcome).Inc()
	metrics.SearchDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	metrics.SearchResults.Observe(float64(len(hits)))

	s.emitTelemetry(ctx, out)
	return out, nil
}

// Suggest returns typeahead completions for a partial query.
func (s *Service) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	if _, _, err := s.snapshot(ctx); err != nil {
		return nil, err
	}
	return suggest.Suggest(query, s.currentVocabulary(), limit), nil
}

// Autocorrect returns the per-word corrected phrase for a query.
func (s *Service) Autocorrect(ctx context.Context, query string) (string, error) {
	if _, _, err := s.snapshot(ctx); err != nil {
		return "", err
	}
	corrected := suggest.Autocorrect(query, s.currentVocabulary())
	if corrected != query {
		metrics.CorrectionsTotal.WithLabelValues("autocorrect").Inc()
	}
	return corrected, nil
}

// RelatedPhrases extracts representative phrases from the top-ranked
// papers for the query.
func (s *Service) RelatedPhrases(ctx context.Context, query string, k int) ([]string, error) {
	snap, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	hits := s.engine.Search(query, snap, filter.None, sortmode.Relevance)
	if len(hits) > snippet.MaxSourcePapers {
		hits = hits[:snippet.MaxSourcePapers]
	}
	top := make([]paper.Paper, len(hits))
	for i := range hits {
		top[i] = hits[i].Paper()
	}
	return snippet.RelatedPhrases(query, top, k, s.phrases), nil
}

// RecordClick persists a result click-through for the current session.
func (s *Service) RecordClick(ctx context.Context) error {
	if s.telemetry == nil {
		return nil
	}
	day := time.Now().UTC().Format("2006-01-02")
	if err := s.telemetry.RecordClick(ctx, day, s.sessionID); err != nil {
		return fmt.Errorf("record click: %w", err)
	}
	return nil
}

// Ready reports whether a corpus snapshot can be served. Used by health
// checks.
func (s *Service) Ready(ctx context.Context) error {
	_, _, err := s.snapshot(ctx)
	return err
}

// Invalidate drops the cached snapshot; the next call refetches. The
// vocabulary accumulator is kept — it only ever grows within a session.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
	metrics.SnapshotRefreshTotal.WithLabelValues("invalidate").Inc()
}

// WatchChanges blocks, invalidating the snapshot cache on every store
// change notification, until ctx is canceled.
func (s *Service) WatchChanges(ctx context.Context) error {
	return s.papers.Watch(ctx, s.Invalidate)
}

// snapshot returns the cached snapshot or fetches papers, directory and
// ratings concurrently. On a fresh fetch the vocabulary delta is merged
// into the session accumulator (copy-on-merge: published vocabularies
// are never written again, so readers need no lock).
func (s *Service) snapshot(ctx context.Context) (corpus.Snapshot, time.Duration, error) {
	s.mu.Lock()
	if s.snap != nil {
		snap := *s.snap
		s.mu.Unlock()
		return snap, 0, nil
	}
	s.mu.Unlock()

	start := time.Now()
	var snap corpus.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		papers, err := s.papers.Snapshot(gctx)
		if err != nil {
			return fmt.Errorf("fetch papers: %w", err)
		}
		snap.Papers = papers
		return nil
	})
	g.Go(func() error {
		dir, err := s.profiles.Directory(gctx)
		if err != nil {
			return fmt.Errorf("fetch user directory: %w", err)
		}
		snap.Directory = dir
		return nil
	})
	g.Go(func() error {
		sums, err := s.ratings.Summaries(gctx)
		if err != nil {
			return fmt.Errorf("fetch ratings: %w", err)
		}
		snap.Ratings = sums
		return nil
	})
	if err := g.Wait(); err != nil {
		return corpus.Snapshot{}, 0, err
	}
	fetchDur := time.Since(start)
	metrics.SnapshotFetchDuration.Observe(fetchDur.Seconds())
	metrics.SnapshotRefreshTotal.WithLabelValues("miss").Inc()

	delta := vocab.Build(snap)
	s.mu.Lock()
	merged := vocab.Merge(vocab.Merge(vocab.New(), s.vocabulary), delta)
	s.vocabulary = merged
	s.snap = &snap
	s.mu.Unlock()

	return snap, fetchDur, nil
}

// currentVocabulary returns the latest published vocabulary.
func (s *Service) currentVocabulary() vocab.Vocabulary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vocabulary
}

// supersede derives a context canceled by the next Search invocation.
func (s *Service) supersede(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancelPrev != nil {
		s.cancelPrev()
	}
	s.cancelPrev = cancel
	s.mu.Unlock()
	return ctx, cancel
}

// emitTelemetry persists the invocation counters; failures are logged,
// never surfaced to the caller.
func (s *Service) emitTelemetry(ctx context.Context, out Outcome) {
	if s.telemetry == nil {
		return
	}
	day := time.Now().UTC().Format("2006-01-02")
	if err := s.telemetry.RecordSearch(ctx, day, out.SessionID, out.Total, out.FetchDuration); err != nil {
		s.logger.Warn("failed to record search telemetry", zap.Error(err))
	}
}
