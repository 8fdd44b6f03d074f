package core

import (
	"errors"
	"testing"
)

func TestValidateSampleProposal(t *testing.T) {
	valid := &SampleProposal{
		Title:    "E-commerce Platform",
		Category: "Shopify",
		Content:  "A complete proposal for an online store",
		Cost:     12000,
		Approved: true,
	}

	tests := []struct {
		name    string
		mutate  func(s *SampleProposal)
		wantErr error
	}{
		{
			name:   "valid sample",
			mutate: func(s *SampleProposal) {},
		},
		{
			name:    "empty title",
			mutate:  func(s *SampleProposal) { s.Title = "" },
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "empty content",
			mutate:  func(s *SampleProposal) { s.Content = "" },
			wantErr: ErrEmptyContent,
		},
		{
			name:    "negative cost",
			mutate:  func(s *SampleProposal) { s.Cost = -1 },
			wantErr: ErrNegativeCost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sample := *valid
			tt.mutate(&sample)
			err := ValidateSampleProposal(&sample)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSampleProposal() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSampleProposal() = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidSampleProposal) {
				t.Errorf("error should wrap ErrInvalidSampleProposal, got %v", err)
			}
		})
	}

	if err := ValidateSampleProposal(nil); !errors.Is(err, ErrInvalidSampleProposal) {
		t.Errorf("ValidateSampleProposal(nil) = %v", err)
	}
}

func TestValidateProposal(t *testing.T) {
	valid := &Proposal{
		ClientName:   "Acme Corp",
		Category:     "MERN",
		Requirements: "Build a SaaS dashboard",
		Complexity:   ComplexityMedium,
		Status:       StatusDraft,
	}

	tests := []struct {
		name    string
		mutate  func(p *Proposal)
		wantErr error
	}{
		{
			name:   "valid proposal",
			mutate: func(p *Proposal) {},
		},
		{
			name:   "empty complexity is allowed before detection",
			mutate: func(p *Proposal) { p.Complexity = "" },
		},
		{
			name:    "empty client name",
			mutate:  func(p *Proposal) { p.ClientName = "" },
			wantErr: ErrEmptyClientName,
		},
		{
			name:    "empty requirements",
			mutate:  func(p *Proposal) { p.Requirements = "" },
			wantErr: ErrEmptyRequirements,
		},
		{
			name:    "unknown status",
			mutate:  func(p *Proposal) { p.Status = ProposalStatus(42) },
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "unknown complexity",
			mutate:  func(p *Proposal) { p.Complexity = "extreme" },
			wantErr: ErrInvalidComplexity,
		},
		{
			name:    "negative cost",
			mutate:  func(p *Proposal) { p.Cost = -100 },
			wantErr: ErrNegativeCost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposal := *valid
			tt.mutate(&proposal)
			err := ValidateProposal(&proposal)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProposal() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProposal() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePricingRule(t *testing.T) {
	if err := ValidatePricingRule(&PricingRule{FeatureName: "User Authentication", BaseCost: 500}); err != nil {
		t.Errorf("ValidatePricingRule() = %v, want nil", err)
	}
	if err := ValidatePricingRule(&PricingRule{}); !errors.Is(err, ErrEmptyFeatureName) {
		t.Errorf("ValidatePricingRule() = %v, want ErrEmptyFeatureName", err)
	}
	if err := ValidatePricingRule(&PricingRule{FeatureName: "X", BaseCost: -5}); !errors.Is(err, ErrNegativeCost) {
		t.Errorf("ValidatePricingRule() = %v, want ErrNegativeCost", err)
	}
}

func TestValidateTemplate(t *testing.T) {
	if err := ValidateTemplate(&Template{Name: "MERN Standard", Content: "## Executive Summary"}); err != nil {
		t.Errorf("ValidateTemplate() = %v, want nil", err)
	}
	if err := ValidateTemplate(&Template{Content: "body"}); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("ValidateTemplate() = %v, want ErrEmptyTitle", err)
	}
}
