package storage

import (
	"context"

	"github.com/quillside/proposia/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// SampleRepository provides operations for the approved-sample candidate pool.
type SampleRepository interface {
	Repository
	// AddSamples adds one or more sample proposals to storage.
	// Generates new IDs from sequence and sets InsertedAt timestamps.
	// Returns the samples with generated IDs and timestamps populated.
	AddSamples(ctx context.Context, samples ...*core.SampleProposal) ([]*core.SampleProposal, error)

	// UpdateSamples updates existing sample proposals.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any sample doesn't exist.
	UpdateSamples(ctx context.Context, samples ...*core.SampleProposal) ([]*core.SampleProposal, error)

	// DeleteSamples removes sample proposals by their IDs.
	// Returns ErrNotFound if any sample doesn't exist.
	DeleteSamples(ctx context.Context, ids ...core.ID) error

	// GetSample retrieves a single sample proposal by ID.
	// Returns ErrNotFound if the sample doesn't exist.
	GetSample(ctx context.Context, id core.ID) (*core.SampleProposal, error)

	// FindApproved retrieves up to limit approved samples, optionally filtered
	// by exact category match (empty category means all categories).
	// Only samples with Approved set are returned; this is the pool's
	// eligibility predicate. Results are in stable insertion-key order.
	FindApproved(ctx context.Context, category string, limit int) ([]*core.SampleProposal, error)

	// AllSamples retrieves every stored sample regardless of approval,
	// in stable key order. Used by batch re-embedding.
	AllSamples(ctx context.Context) ([]*core.SampleProposal, error)

	// UpdateVector persists a new embedding vector onto an existing sample
	// without touching any other field. Returns ErrNotFound if missing.
	UpdateVector(ctx context.Context, id core.ID, vector []float32) error
}

// ProposalRepository provides operations for the prior-proposal candidate pool.
type ProposalRepository interface {
	Repository
	// AddProposals adds one or more proposals to storage.
	// Generates new IDs from sequence and sets InsertedAt timestamps.
	AddProposals(ctx context.Context, proposals ...*core.Proposal) ([]*core.Proposal, error)

	// UpdateProposals updates existing proposals.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any proposal doesn't exist.
	UpdateProposals(ctx context.Context, proposals ...*core.Proposal) ([]*core.Proposal, error)

	// DeleteProposals removes proposals by their IDs.
	// Returns ErrNotFound if any proposal doesn't exist.
	DeleteProposals(ctx context.Context, ids ...core.ID) error

	// GetProposal retrieves a single proposal by ID.
	// Returns ErrNotFound if the proposal doesn't exist.
	GetProposal(ctx context.Context, id core.ID) (*core.Proposal, error)

	// FindCandidates retrieves up to limit proposals whose status is terminal
	// (accepted or completed), optionally filtered by exact category match.
	// This is the pool's eligibility predicate. Results are in stable
	// insertion-key order.
	FindCandidates(ctx context.Context, category string, limit int) ([]*core.Proposal, error)

	// AllProposals retrieves every stored proposal regardless of status,
	// in stable key order. Used by batch re-embedding.
	AllProposals(ctx context.Context) ([]*core.Proposal, error)

	// UpdateStatus transitions a proposal to a new lifecycle status.
	// Returns ErrNotFound if the proposal doesn't exist.
	UpdateStatus(ctx context.Context, id core.ID, status core.ProposalStatus) error

	// UpdateVector persists a new embedding vector onto an existing proposal
	// without touching any other field. Returns ErrNotFound if missing.
	UpdateVector(ctx context.Context, id core.ID, vector []float32) error
}

// PricingRuleRepository provides operations for feature pricing rules.
type PricingRuleRepository interface {
	Repository
	// PutRules upserts pricing rules keyed by IDFromContent of their
	// feature name and category, so reseeding is idempotent.
	PutRules(ctx context.Context, rules ...*core.PricingRule) ([]*core.PricingRule, error)

	// RulesForCategory retrieves rules applying to the category: rules with a
	// matching Category plus category-agnostic rules (empty Category).
	RulesForCategory(ctx context.Context, category string) ([]*core.PricingRule, error)
}

// TemplateRepository provides operations for proposal templates.
type TemplateRepository interface {
	Repository
	// PutTemplates upserts templates keyed by IDFromContent of their
	// name and category.
	PutTemplates(ctx context.Context, templates ...*core.Template) ([]*core.Template, error)

	// ActiveTemplate retrieves the first active template for the category.
	// Returns ErrNotFound if no active template exists for it.
	ActiveTemplate(ctx context.Context, category string) (*core.Template, error)
}
