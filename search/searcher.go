package search

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quillside/proposia/ai"
	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/storage"
)

const (
	// DefaultLimit is the result count used when the caller passes 0.
	DefaultLimit = 3

	// poolFactor oversizes each pool fetch relative to the final limit,
	// leaving headroom for candidates that lack stored vectors.
	poolFactor = 3

	// defaultEmbedTimeout bounds the query embedding call. Expiry counts
	// as provider failure and triggers the deterministic fallback.
	defaultEmbedTimeout = 10 * time.Second
)

// Searcher ranks stored proposals and reference samples against a free-text
// requirements query. It is a pure read path: concurrent searches share no
// mutable state.
type Searcher struct {
	sampleRepository   storage.SampleRepository
	proposalRepository storage.ProposalRepository
	embedder           ai.Embedder
	embedTimeout       time.Duration
	logger             *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithEmbedTimeout bounds the query embedding call.
func WithEmbedTimeout(d time.Duration) Option {
	return func(s *Searcher) error {
		if d > 0 {
			s.embedTimeout = d
		}
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	sampleRepository storage.SampleRepository,
	proposalRepository storage.ProposalRepository,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if sampleRepository == nil {
		return nil, ErrSampleRepositoryRequired
	}
	if proposalRepository == nil {
		return nil, ErrProposalRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		sampleRepository:   sampleRepository,
		proposalRepository: proposalRepository,
		embedder:           provider.Embedder(),
		embedTimeout:       defaultEmbedTimeout,
		logger:             slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// candidate is the pool-independent scorable shape both pools map into
// before entering the shared ranking routine.
type candidate struct {
	result *core.SearchResult
	text   string
	vector []float32
}

// Search returns up to limit results ranked by similarity to the query.
// An empty category matches all categories; limit 0 means DefaultLimit.
//
// Storage failures are fatal and propagated. Embedding provider failures
// are not: the query falls back to a deterministic pseudo-embedding, and
// if no candidate carries a stored vector at all, ranking degrades to
// lexical token containment. An empty candidate pool yields an empty
// slice and a nil error.
func (s *Searcher) Search(ctx context.Context, query, category string, limit int) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, category, limit, nil)
}

// SearchWithMonitor is Search with observation hooks at each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query, category string, limit int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	monitor.Start(query, category)

	// 1. Fetch both candidate pools in parallel. Neither depends on the
	// other, and a storage failure in either is fatal.
	var samples []*core.SampleProposal
	var proposals []*core.Proposal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		samples, err = s.sampleRepository.FindApproved(gctx, category, limit*poolFactor)
		return err
	})
	g.Go(func() error {
		var err error
		proposals, err = s.proposalRepository.FindCandidates(gctx, category, limit*poolFactor)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("error fetching candidate pools", "category", category, "err", err)
		return nil, err
	}
	monitor.AfterPoolFetch(len(samples), len(proposals))

	// 2. Map both pools into the shared candidate shape. Samples enter
	// first; the stable tie-break is pure discovery order, with no
	// pool-preference weighting.
	candidates := make([]*candidate, 0, len(samples)+len(proposals))
	for _, sample := range samples {
		candidates = append(candidates, &candidate{
			result: &core.SearchResult{
				Source:        core.SourceSample,
				Id:            sample.Id,
				Title:         sample.Title,
				Category:      sample.Category,
				Content:       sample.Content,
				Cost:          sample.Cost,
				TimelineWeeks: sample.TimelineWeeks,
			},
			text:   sample.EmbeddingText(),
			vector: sample.Vector,
		})
	}
	for _, proposal := range proposals {
		candidates = append(candidates, &candidate{
			result: &core.SearchResult{
				Source:        core.SourcePrevious,
				Id:            proposal.Id,
				Title:         proposal.ClientName,
				Category:      proposal.Category,
				Content:       proposal.Requirements,
				Cost:          proposal.Cost,
				TimelineWeeks: proposal.TimelineWeeks,
			},
			text:   proposal.Requirements,
			vector: proposal.Vector,
		})
	}

	if len(candidates) == 0 {
		monitor.Finish(nil)
		return []*core.SearchResult{}, nil
	}

	// 3. Embed the query. Provider failure is never fatal here: the
	// deterministic fallback vector keeps identical queries comparable
	// even with no network.
	queryVector, degraded := s.embedQuery(ctx, query)
	monitor.AfterQueryEmbedding(len(queryVector), degraded)

	// 4. Vector ranking over candidates that have a stored vector.
	// Candidates without one are excluded rather than scored zero.
	scored := make([]*core.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		if len(c.vector) == 0 {
			continue
		}
		c.result.Score = Cosine(queryVector, c.vector)
		scored = append(scored, c.result)
		monitor.VectorHit(c.result)
	}

	// 5. Lexical fallback only when no candidate carried a vector.
	if len(scored) == 0 {
		monitor.LexicalFallback(len(candidates))
		s.logger.Debug("no stored vectors, ranking by token containment", "candidates", len(candidates))
		for _, c := range candidates {
			c.result.Score = ContainmentScore(query, c.text)
			scored = append(scored, c.result)
		}
	}

	// 6. Sort descending; equal scores keep first-seen order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	for _, result := range scored {
		result.Relevance = Classify(result.Score)
	}
	monitor.Finish(scored)

	return scored, nil
}

// embedQuery embeds the query text under a conservative timeout, switching
// to the deterministic fallback vector on any provider failure. The second
// return value reports whether the fallback was used.
func (s *Searcher) embedQuery(ctx context.Context, query string) ([]float32, bool) {
	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	vector, err := s.embedder.EmbedText(embedCtx, query)
	if err != nil || len(vector) == 0 {
		s.logger.Warn("embedding provider failed, using fallback vector", "err", err)
		return ai.FallbackVector(query), true
	}

	return vector, false
}
