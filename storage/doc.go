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


// Package storage provides the storage abstraction layer for proposia.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic. It allows for different storage
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Candidate pools
//
// The two retrieval pools are deliberately separate repositories:
//
//   - SampleRepository: curated, approved reference proposals
//   - ProposalRepository: previously generated proposals; only those in a
//     terminal accepted/completed status are surfaced as candidates
//
// Eligibility predicates live in the repositories (FindApproved,
// FindCandidates) so callers can never accidentally rank an unapproved or
// in-flight record.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces to enforce abstraction:
//
//	repo, err := badger.NewSampleRepository(backend)  // storage.SampleRepository
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. Vector writes are not transactional with
// candidate reads; a search may observe a stale or missing embedding while a
// record is being re-embedded, which is acceptable.
//
// # Context Support
//
// All repository methods accept context.Context. Pass context.Background()
// for operations without specific timeout requirements.
package storage
