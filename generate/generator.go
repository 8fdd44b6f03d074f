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

package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/quillside/proposia/ai"
	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/search"
	"github.com/quillside/proposia/storage"
)

// Request carries everything needed to draft a proposal. Category and
// Complexity are optional; unset values are detected from Requirements.
type Request struct {
	ClientName   string
	ClientEmail  string
	Requirements string
	Category     string
	Complexity   core.Complexity
	Limit        int
}

// Response is the drafted proposal together with the estimate and the
// similar work that grounded the prompt.
type Response struct {
	Proposal *core.Proposal
	Features []string
	Similar  []*core.SearchResult
}

// EmbeddingNotifier receives change notifications for freshly persisted
// proposals so their requirements get embedded in the background.
type EmbeddingNotifier interface {
	ProposalChanged(id core.ID)
}

// Generator drafts client proposals: it detects the project type and
// complexity, prices the extracted features, retrieves similar past work,
// prompts the LLM, and persists the draft.
type Generator struct {
	searcher           *search.Searcher
	proposalRepository storage.ProposalRepository
	ruleRepository     storage.PricingRuleRepository
	templateRepository storage.TemplateRepository
	llm                ai.Generator
	notifier           EmbeddingNotifier
	logger             *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator) error

// WithLogger sets a custom logger. Pass nil for the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		}
		g.logger = logger.With("component", "generator")
		return nil
	}
}

// WithNotifier sets the embedding notifier invoked after a draft is
// persisted. Without one, drafts are stored unembedded until the next
// batch re-embedding.
func WithNotifier(notifier EmbeddingNotifier) Option {
	return func(g *Generator) error {
		g.notifier = notifier
		return nil
	}
}

// NewGenerator creates a proposal generator over the given searcher,
// repositories, and AI provider.
func NewGenerator(
	searcher *search.Searcher,
	proposalRepository storage.ProposalRepository,
	ruleRepository storage.PricingRuleRepository,
	templateRepository storage.TemplateRepository,
	provider ai.Provider,
	opts ...Option,
) (*Generator, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if proposalRepository == nil {
		return nil, ErrProposalRepositoryRequired
	}
	if ruleRepository == nil {
		return nil, ErrPricingRuleRepositoryRequired
	}
	if templateRepository == nil {
		return nil, ErrTemplateRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	g := &Generator{
		searcher:           searcher,
		proposalRepository: proposalRepository,
		ruleRepository:     ruleRepository,
		templateRepository: templateRepository,
		llm:                provider.Generator(),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(os.Stderr, nil)).
			With("component", "generator")
	}

	return g, nil
}

// Generate drafts a proposal for the request and persists it with draft
// status. The returned proposal carries its generated ID.
func (g *Generator) Generate(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Requirements == "" {
		return nil, ErrRequirementsRequired
	}

	category := req.Category
	if !validCategory(category) {
		if category != "" {
			g.logger.Debug("unknown category on request, detecting", "category", category)
		}
		category = DetectCategory(ctx, g.llm, req.Requirements, g.logger)
	}

	complexity := req.Complexity
	if !complexity.Valid() {
		complexity = DetectComplexity(ctx, g.llm, req.Requirements, g.logger)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = search.DefaultLimit
	}

	var (
		similar         []*core.SearchResult
		rules           []*core.PricingRule
		templateContent string
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		similar, err = g.searcher.Search(groupCtx, req.Requirements, category, limit)
		if err != nil {
			return fmt.Errorf("searching similar proposals: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		rules, err = g.ruleRepository.RulesForCategory(groupCtx, category)
		if err != nil {
			return fmt.Errorf("loading pricing rules: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		template, err := g.templateRepository.ActiveTemplate(groupCtx, category)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("loading template: %w", err)
		}
		templateContent = template.Content
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	features := ExtractFeatures(ctx, g.llm, req.Requirements, g.logger)
	estimate := CalculateEstimate(features, rules, complexity)

	prompt := buildProposalPrompt(req, category, complexity, estimate.Cost,
		estimate.TimelineWeeks, similar, templateContent)

	generated, err := g.llm.Generate(ctx, proposalSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating proposal: %w", err)
	}

	proposal := &core.Proposal{
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		Category:      category,
		Requirements:  req.Requirements,
		Generated:     generated,
		Cost:          estimate.Cost,
		TimelineWeeks: estimate.TimelineWeeks,
		Complexity:    complexity,
		Status:        core.StatusDraft,
	}

	stored, err := g.proposalRepository.AddProposals(ctx, proposal)
	if err != nil {
		return nil, fmt.Errorf("persisting proposal: %w", err)
	}
	proposal = stored[0]

	if g.notifier != nil {
		g.notifier.ProposalChanged(proposal.Id)
	}

	g.logger.Info("proposal drafted",
		"id", proposal.Id,
		"category", category,
		"complexity", complexity,
		"cost", estimate.Cost,
		"weeks", estimate.TimelineWeeks,
		"similar", len(similar))

	return &Response{
		Proposal: proposal,
		Features: features,
		Similar:  similar,
	}, nil
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
