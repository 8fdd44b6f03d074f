package indexing

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/quillside/proposia/ai"
	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/storage"
)

// embedTimeout bounds each background embedding call. Expiry counts as
// provider failure and switches to the deterministic fallback vector.
const embedTimeout = 10 * time.Second

// Pipeline computes and persists item embeddings off the request path.
// Create and update operations hand their item over and return immediately;
// embedding failures are logged and swallowed, never propagated back to the
// operation that triggered them.
type Pipeline struct {
	sampleRepository   storage.SampleRepository
	proposalRepository storage.ProposalRepository
	embedder           ai.Embedder
	pool               *ants.Pool
	logger             *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for background embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	sampleRepository storage.SampleRepository,
	proposalRepository storage.ProposalRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if sampleRepository == nil {
		return nil, ErrSampleRepositoryRequired
	}
	if proposalRepository == nil {
		return nil, ErrProposalRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		sampleRepository:   sampleRepository,
		proposalRepository: proposalRepository,
		embedder:           provider.Embedder(),
		pool:               pool,
		logger:             slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// SampleChanged schedules (re)embedding of a sample's text.
// Fire-and-forget: the caller's create/update never waits on it and never
// sees its errors.
func (p *Pipeline) SampleChanged(id core.ID) {
	err := p.pool.Submit(func() {
		if err := p.embedSample(context.Background(), id); err != nil {
			p.logger.Error("error embedding sample", "id", id, "err", err)
		}
	})
	if err != nil {
		p.logger.Error("error scheduling sample embedding", "id", id, "err", err)
	}
}

// ProposalChanged schedules (re)embedding of a proposal's requirements text.
// Fire-and-forget, same semantics as SampleChanged.
func (p *Pipeline) ProposalChanged(id core.ID) {
	err := p.pool.Submit(func() {
		if err := p.embedProposal(context.Background(), id); err != nil {
			p.logger.Error("error embedding proposal", "id", id, "err", err)
		}
	})
	if err != nil {
		p.logger.Error("error scheduling proposal embedding", "id", id, "err", err)
	}
}

func (p *Pipeline) embedSample(ctx context.Context, id core.ID) error {
	sample, err := p.sampleRepository.GetSample(ctx, id)
	if err != nil {
		return err
	}

	vector := p.embedOrFallback(ctx, sample.EmbeddingText())
	return p.sampleRepository.UpdateVector(ctx, id, vector)
}

func (p *Pipeline) embedProposal(ctx context.Context, id core.ID) error {
	proposal, err := p.proposalRepository.GetProposal(ctx, id)
	if err != nil {
		return err
	}

	vector := p.embedOrFallback(ctx, proposal.Requirements)
	return p.proposalRepository.UpdateVector(ctx, id, vector)
}

// embedOrFallback embeds text under a conservative timeout. Provider failure
// yields the deterministic fallback vector, shared with the query path, so
// fallback-embedded items remain comparable to fallback queries.
func (p *Pipeline) embedOrFallback(ctx context.Context, text string) []float32 {
	embedCtx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	vector, err := p.embedder.EmbedText(embedCtx, text)
	if err != nil || len(vector) == 0 {
		p.logger.Warn("embedding provider failed, storing fallback vector", "err", err)
		return ai.FallbackVector(text)
	}

	return vector
}

// Release releases the worker pool. Queued jobs may be dropped.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
