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


package core

import "fmt"

// ValidateSampleProposal validates a SampleProposal according to domain rules.
//
// Validation rules:
//   - Title and Content must not be empty
//   - Cost must not be negative
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the indexing pipeline runs)
//   - ID (0 is valid from database sequences)
func ValidateSampleProposal(sample *SampleProposal) error {
	if sample == nil {
		return fmt.Errorf("%w: sample is nil", ErrInvalidSampleProposal)
	}

	if sample.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSampleProposal, ErrEmptyTitle)
	}

	if sample.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSampleProposal, ErrEmptyContent)
	}

	if sample.Cost < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSampleProposal, ErrNegativeCost)
	}

	return nil
}

// ValidateProposal validates a Proposal according to domain rules.
//
// Validation rules:
//   - ClientName and Requirements must not be empty
//   - Status must be a known ProposalStatus
//   - Complexity, if set, must be a known value
//   - Cost must not be negative
func ValidateProposal(proposal *Proposal) error {
	if proposal == nil {
		return fmt.Errorf("%w: proposal is nil", ErrInvalidProposal)
	}

	if proposal.ClientName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProposal, ErrEmptyClientName)
	}

	if proposal.Requirements == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProposal, ErrEmptyRequirements)
	}

	if err := ValidateStatus(proposal.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProposal, err)
	}

	if proposal.Complexity != "" && !proposal.Complexity.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidProposal, ErrInvalidComplexity, proposal.Complexity)
	}

	if proposal.Cost < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProposal, ErrNegativeCost)
	}

	return nil
}

// ValidateStatus checks that the status is one of the known lifecycle values.
func ValidateStatus(status ProposalStatus) error {
	switch status {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusCompleted:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrInvalidStatus, status)
}

// ValidatePricingRule validates a PricingRule according to domain rules.
func ValidatePricingRule(rule *PricingRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule is nil", ErrInvalidPricingRule)
	}

	if rule.FeatureName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPricingRule, ErrEmptyFeatureName)
	}

	if rule.BaseCost < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPricingRule, ErrNegativeCost)
	}

	return nil
}

// ValidateTemplate validates a Template according to domain rules.
func ValidateTemplate(template *Template) error {
	if template == nil {
		return fmt.Errorf("%w: template is nil", ErrInvalidTemplate)
	}

	if template.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, ErrEmptyTitle)
	}

	if template.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, ErrEmptyContent)
	}

	return nil
}
