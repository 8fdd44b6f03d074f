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

import "errors"

var (
	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrProposalRepositoryRequired is returned when a proposal repository is not provided.
	ErrProposalRepositoryRequired = errors.New("proposal repository required")

	// ErrPricingRuleRepositoryRequired is returned when a pricing rule repository is not provided.
	ErrPricingRuleRepositoryRequired = errors.New("pricing rule repository required")

	// ErrTemplateRepositoryRequired is returned when a template repository is not provided.
	ErrTemplateRepositoryRequired = errors.New("template repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrRequirementsRequired is returned when a generation request carries
	// no requirements text.
	ErrRequirementsRequired = errors.New("requirements required")
)
