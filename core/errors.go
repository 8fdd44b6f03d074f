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

import "errors"

// Domain validation errors
var (
	// ErrInvalidSampleProposal indicates a SampleProposal failed validation.
	ErrInvalidSampleProposal = errors.New("invalid sample proposal")

	// ErrInvalidProposal indicates a Proposal failed validation.
	ErrInvalidProposal = errors.New("invalid proposal")

	// ErrInvalidPricingRule indicates a PricingRule failed validation.
	ErrInvalidPricingRule = errors.New("invalid pricing rule")

	// ErrInvalidTemplate indicates a Template failed validation.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyContent indicates the content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyClientName indicates the ClientName field is empty.
	ErrEmptyClientName = errors.New("client name cannot be empty")

	// ErrEmptyRequirements indicates the Requirements field is empty.
	ErrEmptyRequirements = errors.New("requirements cannot be empty")

	// ErrEmptyFeatureName indicates the FeatureName field is empty.
	ErrEmptyFeatureName = errors.New("feature name cannot be empty")

	// ErrNegativeCost indicates a negative cost value.
	ErrNegativeCost = errors.New("cost cannot be negative")

	// ErrInvalidStatus indicates an invalid ProposalStatus value.
	ErrInvalidStatus = errors.New("invalid proposal status")

	// ErrInvalidComplexity indicates an invalid Complexity value.
	ErrInvalidComplexity = errors.New("invalid complexity")
)
