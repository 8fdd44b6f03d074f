// Copyright 2025 Quillside Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package indexing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/quillside/proposia/ai"
	"github.com/quillside/proposia/storage"
)

// Config holds configuration for the batch re-embedding operation.
type Config struct {
	// BatchSize is the number of items to embed in each API call
	BatchSize int

	// ReportInterval is how often to report progress (number of items)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed embedding calls
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder recomputes stored embeddings for every item in both candidate
// pools. Used after switching embedding models, when all stored vectors
// become stale at once.
type Reembedder struct {
	sampleRepository   storage.SampleRepository
	proposalRepository storage.ProposalRepository
	embedder           ai.Embedder
	config             *Config
	progress           io.Writer
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(
	sampleRepository storage.SampleRepository,
	proposalRepository storage.ProposalRepository,
	embedder ai.Embedder,
	config *Config,
	progress io.Writer,
) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		sampleRepository:   sampleRepository,
		proposalRepository: proposalRepository,
		embedder:           embedder,
		config:             config,
		progress:           progress,
	}
}

// reembedItem is the pool-independent unit of batch work.
type reembedItem struct {
	text  string
	store func(ctx context.Context, vector []float32) error
}

// Run executes the re-embedding operation over both pools.
// Unlike the fire-and-forget write path, batch re-embedding surfaces
// errors: an operator running it needs to know it did not complete.
func (r *Reembedder) Run(ctx context.Context) error {
	samples, err := r.sampleRepository.AllSamples(ctx)
	if err != nil {
		return fmt.Errorf("failed to load samples: %w", err)
	}

	proposals, err := r.proposalRepository.AllProposals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load proposals: %w", err)
	}

	items := make([]reembedItem, 0, len(samples)+len(proposals))
	for _, sample := range samples {
		id := sample.Id
		items = append(items, reembedItem{
			text: sample.EmbeddingText(),
			store: func(ctx context.Context, vector []float32) error {
				return r.sampleRepository.UpdateVector(ctx, id, vector)
			},
		})
	}
	for _, proposal := range proposals {
		id := proposal.Id
		items = append(items, reembedItem{
			text: proposal.Requirements,
			store: func(ctx context.Context, vector []float32) error {
				return r.proposalRepository.UpdateVector(ctx, id, vector)
			},
		})
	}

	if len(items) == 0 {
		fmt.Fprintf(r.progress, "No items found in database (0 records)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting re-embedding of %d items (%d samples, %d proposals, batch size: %d)\n",
		len(items), len(samples), len(proposals), r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, len(items), r.config.ReportInterval)
	tracker.Start()

	for start := 0; start < len(items); start += r.config.BatchSize {
		end := start + r.config.BatchSize
		if end > len(items) {
			end = len(items)
		}

		if err := r.processBatch(ctx, items[start:end]); err != nil {
			return err
		}
		tracker.Increment(end - start)
	}

	tracker.Finish()
	fmt.Fprintf(r.progress, "Re-embedded %d items in %s\n", len(items), tracker.Elapsed().Round(time.Millisecond))

	return nil
}

// processBatch embeds one batch of items with retry and persists the vectors.
func (r *Reembedder) processBatch(ctx context.Context, batch []reembedItem) error {
	texts := make([]string, len(batch))
	for i, item := range batch {
		texts[i] = item.text
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = r.embedder.EmbedTexts(ctx, texts)
		return err
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", r.config.MaxRetries, err)
	}

	if len(embeddings) != len(batch) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embeddings))
	}

	for i, item := range batch {
		if err := item.store(ctx, embeddings[i]); err != nil {
			return fmt.Errorf("failed to store vector: %w", err)
		}
	}

	return nil
}
