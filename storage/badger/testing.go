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


package badger

import "github.com/quillside/proposia/storage"

// NewMemoryRepositories creates in-memory sample and proposal repositories for testing.
// Returns sampleRepo, proposalRepo, backend, and error.
// Caller must close both repos and backend when done.
func NewMemoryRepositories() (storage.SampleRepository, storage.ProposalRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	sampleRepo, err := NewSampleRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	proposalRepo, err := NewProposalRepository(backend)
	if err != nil {
		sampleRepo.Close()
		backend.Close()
		return nil, nil, nil, err
	}

	return sampleRepo, proposalRepo, backend, nil
}

// NewMemoryCatalog creates in-memory pricing rule and template repositories
// for testing, sharing a single backend with the record repositories.
func NewMemoryCatalog(backend *Backend) (storage.PricingRuleRepository, storage.TemplateRepository) {
	return NewPricingRuleRepository(backend), NewTemplateRepository(backend)
}
