package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/storage"
)

func TestSampleBasics(t *testing.T) {
	// Create in-memory repositories
	sampleRepo, proposalRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		proposalRepo.Close()
		sampleRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	// Test adding a sample
	sample := &core.SampleProposal{
		Title:    "E-commerce Platform",
		Category: "MERN",
		Content:  "Full proposal body for an e-commerce build.",
		Approved: true,
		Cost:     12000,
	}

	added, err := sampleRepo.AddSamples(ctx, sample)
	if err != nil {
		t.Fatalf("Failed to add sample: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 sample, got %d", len(added))
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	if added[0].InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	// Test retrieving the sample
	retrieved, err := sampleRepo.GetSample(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get sample: %v", err)
	}

	if retrieved.Title != "E-commerce Platform" {
		t.Fatalf("Expected 'E-commerce Platform', got '%s'", retrieved.Title)
	}

	if retrieved.Cost != 12000 {
		t.Fatalf("Expected cost 12000, got %v", retrieved.Cost)
	}
}

func TestSampleNotFound(t *testing.T) {
	sampleRepo, proposalRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { proposalRepo.Close(); sampleRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = sampleRepo.GetSample(ctx, core.ID(999999))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	err = sampleRepo.UpdateVector(ctx, core.ID(999999), []float32{1, 2, 3})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound from UpdateVector, got %v", err)
	}
}

func TestSampleUpdate(t *testing.T) {
	sampleRepo, proposalRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { proposalRepo.Close(); sampleRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := sampleRepo.AddSamples(ctx, &core.SampleProposal{
		Title:    "Blog Platform",
		Category: "WordPress",
		Content:  "Original content",
		Approved: false,
	})
	if err != nil {
		t.Fatalf("Failed to add sample: %v", err)
	}

	inserted := added[0].InsertedAt

	added[0].Approved = true
	added[0].Content = "Revised content"

	if _, err := sampleRepo.UpdateSamples(ctx, added[0]); err != nil {
		t.Fatalf("Failed to update sample: %v", err)
	}

	retrieved, err := sampleRepo.GetSample(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get sample: %v", err)
	}

	if !retrieved.Approved {
		t.Fatal("Expected Approved after update")
	}

	if retrieved.Content != "Revised content" {
		t.Fatalf("Expected revised content, got '%s'", retrieved.Content)
	}

	if !retrieved.InsertedAt.Equal(inserted) {
		t.Fatal("Expected InsertedAt to be preserved on update")
	}

	if !retrieved.UpdatedAt.After(retrieved.InsertedAt) && !retrieved.UpdatedAt.Equal(retrieved.InsertedAt) {
		t.Fatal("Expected UpdatedAt at or after InsertedAt")
	}
}

func TestSampleDelete(t *testing.T) {
	sampleRepo, proposalRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { proposalRepo.Close(); sampleRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := sampleRepo.AddSamples(ctx, &core.SampleProposal{
		Title:    "To delete",
		Category: "PHP",
		Content:  "x",
	})
	if err != nil {
		t.Fatalf("Failed to add sample: %v", err)
	}

	if err := sampleRepo.DeleteSamples(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete sample: %v", err)
	}

	_, err = sampleRepo.GetSample(ctx, added[0].Id)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestFindApproved(t *testing.T) {
	sampleRepo, proposalRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { proposalRepo.Close(); sampleRepo.Close(); backend.Close() }()

	ctx := context.Background()

	samples := []*core.SampleProposal{
		{Title: "MERN shop", Category: "MERN", Content: "a", Approved: true},
		{Title: "MERN blog", Category: "MERN", Content: "b", Approved: false},
		{Title: "Shopify store", Category: "Shopify", Content: "c", Approved: true},
		{Title: "MERN portal", Category: "MERN", Content: "d", Approved: true},
	}

	if _, err := sampleRepo.AddSamples(ctx, samples...); err != nil {
		t.Fatalf("Failed to add samples: %v", err)
	}

	// Category filter: only approved MERN samples
	results, err := sampleRepo.FindApproved(ctx, "MERN", 10)
	if err != nil {
		t.Fatalf("Failed to find approved: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 approved MERN samples, got %d", len(results))
	}
	for _, s := range results {
		if !s.Approved {
			t.Fatalf("Found unapproved sample %q", s.Title)
		}
		if s.Category != "MERN" {
			t.Fatalf("Found sample with category %q", s.Category)
		}
	}

	// Empty category: all approved
	results, err = sampleRepo.FindApproved(ctx, "", 10)
	if err != nil {
		t.Fatalf("Failed to find approved: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 approved samples, got %d", len(results))
	}

	// Limit is respected
	results, err = sampleRepo.FindApproved(ctx, "", 1)
	if err != nil {
		t.Fatalf("Failed to find approved: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 sample with limit 1, got %d", len(results))
	}

	// Unknown category: empty slice, no error
	results, err = sampleRepo.FindApproved(ctx, "Rails", 10)
	if err != nil {
		t.Fatalf("Failed to find approved: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected no samples for unknown category, got %d", len(results))
	}
}

func TestSampleUpdateVector(t *testing.T) {
	sampleRepo, proposalRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { proposalRepo.Close(); sampleRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := sampleRepo.AddSamples(ctx, &core.SampleProposal{
		Title:    "Vectored",
		Category: "MEAN",
		Content:  "content",
		Approved: true,
	})
	if err != nil {
		t.Fatalf("Failed to add sample: %v", err)
	}

	vec := []float32{0.1, 0.2, 0.3}
	if err := sampleRepo.UpdateVector(ctx, added[0].Id, vec); err != nil {
		t.Fatalf("Failed to update vector: %v", err)
	}

	retrieved, err := sampleRepo.GetSample(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get sample: %v", err)
	}

	if len(retrieved.Vector) != 3 {
		t.Fatalf("Expected vector of length 3, got %d", len(retrieved.Vector))
	}

	if retrieved.Title != "Vectored" {
		t.Fatal("UpdateVector must not touch other fields")
	}
}

func TestAllSamples(t *testing.T) {
	sampleRepo, proposalRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { proposalRepo.Close(); sampleRepo.Close(); backend.Close() }()

	ctx := context.Background()

	samples := []*core.SampleProposal{
		{Title: "one", Category: "MERN", Content: "a", Approved: true},
		{Title: "two", Category: "MERN", Content: "b", Approved: false},
	}
	if _, err := sampleRepo.AddSamples(ctx, samples...); err != nil {
		t.Fatalf("Failed to add samples: %v", err)
	}

	all, err := sampleRepo.AllSamples(ctx)
	if err != nil {
		t.Fatalf("Failed to list samples: %v", err)
	}

	// AllSamples ignores approval
	if len(all) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(all))
	}
}
