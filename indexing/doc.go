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


// Package indexing maintains the stored embeddings that power retrieval.
//
// The Pipeline handles the write path: when an item's text is created or
// edited, the owning operation fires SampleChanged or ProposalChanged and
// moves on. A worker pool embeds the text in the background and persists
// the vector; failures are logged and swallowed so a slow or dead embedding
// service never fails a create or update. Provider failures store the same
// deterministic fallback vector the query path uses.
//
// The Reembedder handles the operator path: batch-recomputing every stored
// vector after an embedding model change, with retry, batching, and
// progress reporting. Unlike the pipeline it surfaces errors.
//
// Embedding writes are not transactional with the search read path. A
// search may observe an item mid-re-embed with a missing or outdated
// vector; that staleness is acceptable.
package indexing
