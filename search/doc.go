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


// Package search implements similarity-ranked retrieval over the two
// candidate pools: approved sample proposals and accepted or completed
// prior proposals.
//
// A search embeds the free-text query, scores every vectored candidate by
// cosine similarity, and returns the top results tagged with a relevance
// tier and their source pool. Both pools pass through one shared ranking
// routine; provenance is metadata, never a ranking bias.
//
// The path degrades in two independent ways. If the embedding provider
// fails, the query switches to a deterministic fallback vector derived
// from the text itself. If no candidate carries a stored vector at all,
// ranking falls back to lexical token containment. Storage failures are
// the only fatal errors; an empty pool is a normal empty result.
package search
