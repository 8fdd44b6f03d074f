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

package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/generate"
	"github.com/quillside/proposia/search"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Reembedder triggers a batch re-embedding run over both candidate pools.
type Reembedder interface {
	Run(ctx context.Context) error
}

// Deps carries the services the API handler dispatches to.
type Deps struct {
	Searcher   *search.Searcher
	Generator  *generate.Generator
	Reembedder Reembedder
	Logger     *slog.Logger
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	ClientName   string `json:"client_name"`
	ClientEmail  string `json:"client_email"`
	Requirements string `json:"requirements"`
	Category     string `json:"category"`
	Complexity   string `json:"complexity"`
	Limit        int    `json:"limit"`
}

// GenerateResponse is the body returned by POST /api/generate.
type GenerateResponse struct {
	Id            uint64   `json:"id"`
	Category      string   `json:"category"`
	Complexity    string   `json:"complexity"`
	Cost          float64  `json:"cost"`
	TimelineWeeks int      `json:"timeline_weeks"`
	Generated     string   `json:"generated"`
	Features      []string `json:"features"`
	SimilarFound  int      `json:"similar_found"`
}

// NewHandler returns the HTTP handler exposing search, generation, and
// embedding maintenance endpoints.
func NewHandler(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	deps.Logger = deps.Logger.With("component", "httpapi")

	r := chi.NewRouter()

	r.Get("/healthz", handleHealth)
	r.Post("/api/search", handleSearch(deps))
	r.Post("/api/generate", handleGenerate(deps))
	r.Post("/api/embeddings", handleEmbeddings(deps))

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleSearch(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Query == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "query is required")
			return
		}

		results, err := deps.Searcher.Search(r.Context(), req.Query, req.Category, req.Limit)
		if err != nil {
			deps.Logger.Error("search failed", "err", err)
			httpError(w, http.StatusInternalServerError, "api_error", "search failed: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(search.BuildReport(req.Query, results))
	}
}

func handleGenerate(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Requirements == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "requirements is required")
			return
		}

		resp, err := deps.Generator.Generate(r.Context(), &generate.Request{
			ClientName:   req.ClientName,
			ClientEmail:  req.ClientEmail,
			Requirements: req.Requirements,
			Category:     req.Category,
			Complexity:   core.Complexity(req.Complexity),
			Limit:        req.Limit,
		})
		if err != nil {
			deps.Logger.Error("generation failed", "err", err)
			httpError(w, http.StatusInternalServerError, "api_error", "generation failed: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GenerateResponse{
			Id:            uint64(resp.Proposal.Id),
			Category:      resp.Proposal.Category,
			Complexity:    string(resp.Proposal.Complexity),
			Cost:          resp.Proposal.Cost,
			TimelineWeeks: resp.Proposal.TimelineWeeks,
			Generated:     resp.Proposal.Generated,
			Features:      resp.Features,
			SimilarFound:  len(resp.Similar),
		})
	}
}

func handleEmbeddings(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Reembedder == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "re-embedding is not configured")
			return
		}

		if err := deps.Reembedder.Run(r.Context()); err != nil {
			deps.Logger.Error("re-embedding failed", "err", err)
			httpError(w, http.StatusInternalServerError, "api_error", "re-embedding failed: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
