package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillside/proposia/ai/mock"
	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/generate"
	"github.com/quillside/proposia/search"
	"github.com/quillside/proposia/storage/badger"
)

type fakeReembedder struct {
	runs int
	err  error
}

func (f *fakeReembedder) Run(ctx context.Context) error {
	f.runs++
	return f.err
}

type apiFixture struct {
	handler    http.Handler
	provider   *mock.MockProvider
	reembedder *fakeReembedder
	seed       func(t *testing.T)
	cleanup    func()
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sampleRepo, proposalRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	ruleRepo, templateRepo := badger.NewMemoryCatalog(backend)

	provider := mock.NewMockProvider().(*mock.MockProvider)

	searcher, err := search.NewSearcher(sampleRepo, proposalRepo, provider,
		search.WithLogger(logger))
	require.NoError(t, err)

	generator, err := generate.NewGenerator(searcher, proposalRepo, ruleRepo,
		templateRepo, provider, generate.WithLogger(logger))
	require.NoError(t, err)

	reembedder := &fakeReembedder{}
	handler := NewHandler(Deps{
		Searcher:   searcher,
		Generator:  generator,
		Reembedder: reembedder,
		Logger:     logger,
	})

	return &apiFixture{
		handler:    handler,
		provider:   provider,
		reembedder: reembedder,
		seed: func(t *testing.T) {
			t.Helper()
			_, err := sampleRepo.AddSamples(context.Background(), &core.SampleProposal{
				Title:               "Online store build",
				Category:            "Shopify",
				Content:             "Storefront with cart, checkout, and inventory sync.",
				RequirementsExcerpt: "online store checkout inventory",
				Cost:                9000,
				TimelineWeeks:       6,
				Approved:            true,
			})
			require.NoError(t, err)
		},
		cleanup: func() {
			sampleRepo.Close()
			proposalRepo.Close()
			backend.Close()
		},
	}
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	f := newAPIFixture(t)
	defer f.cleanup()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSearchEndpoint(t *testing.T) {
	t.Run("MissingQuery", func(t *testing.T) {
		f := newAPIFixture(t)
		defer f.cleanup()

		rec := postJSON(t, f.handler, "/api/search", `{"category": "Shopify"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		f := newAPIFixture(t)
		defer f.cleanup()

		rec := postJSON(t, f.handler, "/api/search", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("EmptyDatabaseReturnsEmptyReport", func(t *testing.T) {
		f := newAPIFixture(t)
		defer f.cleanup()

		rec := postJSON(t, f.handler, "/api/search", `{"query": "online store"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var report search.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Zero(t, report.TotalFound)
		assert.Empty(t, report.Entries)
	})

	t.Run("ReturnsRankedReport", func(t *testing.T) {
		f := newAPIFixture(t)
		defer f.cleanup()
		f.seed(t)

		rec := postJSON(t, f.handler, "/api/search",
			`{"query": "We need an online store with checkout and inventory sync."}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var report search.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		require.Equal(t, 1, report.TotalFound)
		assert.Equal(t, "Online store build", report.Entries[0].Title)
		assert.Equal(t, core.SourceSample, report.Entries[0].Source)
	})
}

func TestGenerateEndpoint(t *testing.T) {
	t.Run("MissingRequirements", func(t *testing.T) {
		f := newAPIFixture(t)
		defer f.cleanup()

		rec := postJSON(t, f.handler, "/api/generate", `{"client_name": "Acme"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("DraftsProposal", func(t *testing.T) {
		f := newAPIFixture(t)
		defer f.cleanup()

		llm := f.provider.GetMockGenerator()
		llm.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			return "# Draft", nil
		}

		rec := postJSON(t, f.handler, "/api/generate", `{
			"client_name": "Acme",
			"requirements": "A company blog with a contact form.",
			"category": "WordPress",
			"complexity": "simple"
		}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp GenerateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotZero(t, resp.Id)
		assert.Equal(t, "WordPress", resp.Category)
		assert.Equal(t, "simple", resp.Complexity)
		assert.Equal(t, "# Draft", resp.Generated)
		assert.Greater(t, resp.Cost, 0.0)
	})

	t.Run("ProviderFailureIsServerError", func(t *testing.T) {
		f := newAPIFixture(t)
		defer f.cleanup()

		llm := f.provider.GetMockGenerator()
		llm.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			return "", errors.New("connection refused")
		}

		rec := postJSON(t, f.handler, "/api/generate", `{
			"requirements": "A blog.",
			"category": "WordPress",
			"complexity": "simple"
		}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestEmbeddingsEndpoint(t *testing.T) {
	t.Run("TriggersRun", func(t *testing.T) {
		f := newAPIFixture(t)
		defer f.cleanup()

		rec := postJSON(t, f.handler, "/api/embeddings", ``)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, f.reembedder.runs)
	})

	t.Run("RunFailureIsServerError", func(t *testing.T) {
		f := newAPIFixture(t)
		defer f.cleanup()
		f.reembedder.err = errors.New("embedder offline")

		rec := postJSON(t, f.handler, "/api/embeddings", ``)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
