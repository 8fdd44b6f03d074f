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

package proposia

import (
	"log/slog"

	"github.com/quillside/proposia/ai"
	"github.com/quillside/proposia/ai/openai"
	"github.com/quillside/proposia/generate"
	"github.com/quillside/proposia/indexing"
	"github.com/quillside/proposia/search"
	"github.com/quillside/proposia/storage"
	"github.com/quillside/proposia/storage/badger"
)

// Database bundles the badger backend, the four repositories, and the AI
// provider behind one open/close lifecycle.
type Database struct {
	backend      *badger.Backend
	sampleRepo   storage.SampleRepository
	proposalRepo storage.ProposalRepository
	ruleRepo     storage.PricingRuleRepository
	templateRepo storage.TemplateRepository
	provider     ai.Provider
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig overrides the default AI provider configuration.
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithInMemory opens the backend without on-disk persistence.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the store at filePath and wires the repositories and
// the AI provider.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	sampleRepo, err := badger.NewSampleRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	proposalRepo, err := badger.NewProposalRepository(backend)
	if err != nil {
		sampleRepo.Close()
		backend.Close()
		return nil, err
	}

	ruleRepo, templateRepo := badger.NewPricingRuleRepository(backend), badger.NewTemplateRepository(backend)

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		proposalRepo.Close()
		sampleRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:      backend,
		sampleRepo:   sampleRepo,
		proposalRepo: proposalRepo,
		ruleRepo:     ruleRepo,
		templateRepo: templateRepo,
		provider:     provider,
		logger:       slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.proposalRepo.Close(); err != nil {
		db.logger.Error("error closing proposal repository", "err", err)
		return err
	}
	if err := db.sampleRepo.Close(); err != nil {
		db.logger.Error("error closing sample repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) SampleRepository() storage.SampleRepository {
	return db.sampleRepo
}

func (db *Database) ProposalRepository() storage.ProposalRepository {
	return db.proposalRepo
}

func (db *Database) PricingRuleRepository() storage.PricingRuleRepository {
	return db.ruleRepo
}

func (db *Database) TemplateRepository() storage.TemplateRepository {
	return db.templateRepo
}

func (db *Database) Provider() ai.Provider {
	return db.provider
}

// NewSearcher creates a similarity searcher over both candidate pools.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.sampleRepo, db.proposalRepo, db.provider, opts...)
}

// NewIndexingPipeline creates the fire-and-forget embedding write path.
func (db *Database) NewIndexingPipeline(opts ...indexing.Option) (*indexing.Pipeline, error) {
	return indexing.NewPipeline(db.sampleRepo, db.proposalRepo, db.provider, opts...)
}

// NewGenerator creates a proposal generator. The searcher and notifier are
// built internally unless overridden through options.
func (db *Database) NewGenerator(searcher *search.Searcher, opts ...generate.Option) (*generate.Generator, error) {
	if searcher == nil {
		var err error
		searcher, err = db.NewSearcher()
		if err != nil {
			return nil, err
		}
	}
	return generate.NewGenerator(searcher, db.proposalRepo, db.ruleRepo, db.templateRepo, db.provider, opts...)
}
