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

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/quillside/proposia"
	"github.com/quillside/proposia/ai"
	"github.com/quillside/proposia/ai/openai"
	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/generate"
	"github.com/quillside/proposia/httpapi"
	"github.com/quillside/proposia/indexing"
	"github.com/quillside/proposia/search"
	"github.com/quillside/proposia/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "proposia",
		Usage: "Similarity-ranked retrieval and proposal drafting for IT projects",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API server",
				Action: serveCommand,
				Flags: append(databaseFlags(), append(aiFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					})...),
			},
			{
				Name:      "search",
				Usage:     "Find proposals similar to the query text",
				Action:    searchCommand,
				ArgsUsage: "<query text>",
				Flags: append(databaseFlags(), append(aiFlags(),
					&cli.StringFlag{
						Name:  "category",
						Usage: "Restrict to a project type (MERN, MEAN, WordPress, PHP, Shopify)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: search.DefaultLimit,
					})...),
			},
			{
				Name:   "generate",
				Usage:  "Draft a proposal from client requirements",
				Action: generateCommand,
				Flags: append(databaseFlags(), append(aiFlags(),
					&cli.StringFlag{
						Name:     "client-name",
						Usage:    "Client name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "client-email",
						Usage: "Client email",
					},
					&cli.StringFlag{
						Name:     "requirements",
						Aliases:  []string{"r"},
						Usage:    "Requirements text, or @path to read from a file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Project type; detected from requirements when omitted",
					},
					&cli.StringFlag{
						Name:  "complexity",
						Usage: "Project complexity (simple, medium, complex); detected when omitted",
					})...),
			},
			{
				Name:   "reembed",
				Usage:  "Recompute embeddings for every stored sample and proposal",
				Action: reembedCommand,
				Flags: append(databaseFlags(), append(aiFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					})...),
			},
			{
				Name:   "seed",
				Usage:  "Load demo samples, pricing rules, and templates",
				Action: seedCommand,
				Flags:  append(databaseFlags(), aiFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			Value:   "./proposia_db",
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL for both models",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "generator-model",
			Usage: "Generation model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "API token for the AI service",
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
	}
	if c.String("token") != "" {
		opts = append(opts, ai.WithToken(c.String("token")))
	}
	return ai.NewConfig(opts...)
}

func openDatabase(c *cli.Context) (*proposia.Database, error) {
	cfg := aiConfigFromFlags(c)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return proposia.NewDatabase(c.String("db"), proposia.WithAIConfig(cfg))
}

func serveCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	pipeline, err := db.NewIndexingPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	generator, err := db.NewGenerator(searcher, generate.WithNotifier(pipeline))
	if err != nil {
		return err
	}

	reembedder := indexing.NewReembedder(db.SampleRepository(), db.ProposalRepository(),
		db.Provider().Embedder(), indexing.DefaultConfig(), os.Stderr)

	handler := httpapi.NewHandler(httpapi.Deps{
		Searcher:   searcher,
		Generator:  generator,
		Reembedder: reembedder,
		Logger:     slog.Default(),
	})

	server := &http.Server{
		Addr:              c.String("addr"),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("query text is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.Search(context.Background(), query, c.String("category"), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	report := search.BuildReport(query, results)
	fmt.Printf("Found %d similar proposals for %q\n", report.TotalFound, report.QueryExcerpt)
	for i, entry := range report.Entries {
		fmt.Printf("%d: %s (%s, %d%%, %s)\n", i+1, entry.Title, entry.Source,
			entry.SimilarityPercent, entry.Relevance)
	}
	return nil
}

func generateCommand(c *cli.Context) error {
	requirements := c.String("requirements")
	if strings.HasPrefix(requirements, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(requirements, "@"))
		if err != nil {
			return fmt.Errorf("failed to read requirements file: %w", err)
		}
		requirements = string(data)
	}

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIndexingPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	generator, err := db.NewGenerator(nil, generate.WithNotifier(pipeline))
	if err != nil {
		return err
	}

	resp, err := generator.Generate(context.Background(), &generate.Request{
		ClientName:   c.String("client-name"),
		ClientEmail:  c.String("client-email"),
		Requirements: requirements,
		Category:     c.String("category"),
		Complexity:   core.Complexity(c.String("complexity")),
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Proposal %d: %s, %s, $%.0f, %d weeks\n",
		resp.Proposal.Id, resp.Proposal.Category, resp.Proposal.Complexity,
		resp.Proposal.Cost, resp.Proposal.TimelineWeeks)
	fmt.Println(resp.Proposal.Generated)
	return nil
}

func reembedCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	sampleRepo, err := badger.NewSampleRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create sample repository: %w", err)
	}
	defer sampleRepo.Close()

	proposalRepo, err := badger.NewProposalRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create proposal repository: %w", err)
	}
	defer proposalRepo.Close()

	cfg := aiConfigFromFlags(c)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &indexing.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := indexing.NewReembedder(sampleRepo, proposalRepo, embedder, reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("ai-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n\n", c.String("embedding-model"))

	if err := reembedder.Run(context.Background()); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
