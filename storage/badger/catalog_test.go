package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/storage"
)

func TestPricingRuleUpsert(t *testing.T) {
	sampleRepo, proposalRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { proposalRepo.Close(); sampleRepo.Close(); backend.Close() }()

	ruleRepo, _ := NewMemoryCatalog(backend)
	defer ruleRepo.Close()

	ctx := context.Background()

	rule := &core.PricingRule{
		FeatureName: "payment gateway",
		Category:    "MERN",
		BaseCost:    1500,
		TimeHours:   40,
	}

	added, err := ruleRepo.PutRules(ctx, rule)
	if err != nil {
		t.Fatalf("Failed to put rule: %v", err)
	}

	if added[0].Id == 0 {
		t.Fatal("Expected content-derived ID")
	}

	firstID := added[0].Id
	inserted := added[0].InsertedAt

	// Re-seeding the same rule keeps the same ID and InsertedAt
	again, err := ruleRepo.PutRules(ctx, &core.PricingRule{
		FeatureName: "payment gateway",
		Category:    "MERN",
		BaseCost:    1800,
		TimeHours:   45,
	})
	if err != nil {
		t.Fatalf("Failed to re-put rule: %v", err)
	}

	if again[0].Id != firstID {
		t.Fatalf("Expected stable ID %d, got %d", firstID, again[0].Id)
	}

	if !again[0].InsertedAt.Equal(inserted) {
		t.Fatal("Expected InsertedAt preserved on upsert")
	}

	rules, err := ruleRepo.RulesForCategory(ctx, "MERN")
	if err != nil {
		t.Fatalf("Failed to list rules: %v", err)
	}

	if len(rules) != 1 {
		t.Fatalf("Expected 1 rule after upsert, got %d", len(rules))
	}

	if rules[0].BaseCost != 1800 {
		t.Fatalf("Expected updated base cost 1800, got %v", rules[0].BaseCost)
	}
}

func TestRulesForCategory(t *testing.T) {
	sampleRepo, proposalRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { proposalRepo.Close(); sampleRepo.Close(); backend.Close() }()

	ruleRepo, _ := NewMemoryCatalog(backend)
	defer ruleRepo.Close()

	ctx := context.Background()

	rules := []*core.PricingRule{
		{FeatureName: "user authentication", Category: "", BaseCost: 800, TimeHours: 20},
		{FeatureName: "inventory sync", Category: "Shopify", BaseCost: 1200, TimeHours: 30},
		{FeatureName: "real-time chat", Category: "MERN", BaseCost: 2000, TimeHours: 50},
	}

	if _, err := ruleRepo.PutRules(ctx, rules...); err != nil {
		t.Fatalf("Failed to put rules: %v", err)
	}

	// Category query returns matching plus category-agnostic rules
	got, err := ruleRepo.RulesForCategory(ctx, "Shopify")
	if err != nil {
		t.Fatalf("Failed to list rules: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Expected 2 rules for Shopify, got %d", len(got))
	}

	for _, r := range got {
		if r.Category != "" && r.Category != "Shopify" {
			t.Fatalf("Unexpected rule category %q", r.Category)
		}
	}
}

func TestActiveTemplate(t *testing.T) {
	sampleRepo, proposalRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { proposalRepo.Close(); sampleRepo.Close(); backend.Close() }()

	_, templateRepo := NewMemoryCatalog(backend)
	defer templateRepo.Close()

	ctx := context.Background()

	templates := []*core.Template{
		{Name: "retired", Category: "MERN", Content: "old skeleton", Active: false},
		{Name: "standard", Category: "MERN", Content: "current skeleton", Active: true},
		{Name: "shop", Category: "Shopify", Content: "shop skeleton", Active: true},
	}

	if _, err := templateRepo.PutTemplates(ctx, templates...); err != nil {
		t.Fatalf("Failed to put templates: %v", err)
	}

	got, err := templateRepo.ActiveTemplate(ctx, "MERN")
	if err != nil {
		t.Fatalf("Failed to get active template: %v", err)
	}

	if !got.Active || got.Category != "MERN" {
		t.Fatalf("Expected active MERN template, got %+v", got)
	}

	// No active template for the category
	_, err = templateRepo.ActiveTemplate(ctx, "Rails")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestTemplateUpsert(t *testing.T) {
	sampleRepo, proposalRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { proposalRepo.Close(); sampleRepo.Close(); backend.Close() }()

	_, templateRepo := NewMemoryCatalog(backend)
	defer templateRepo.Close()

	ctx := context.Background()

	first, err := templateRepo.PutTemplates(ctx, &core.Template{
		Name: "standard", Category: "PHP", Content: "v1", Active: true,
	})
	if err != nil {
		t.Fatalf("Failed to put template: %v", err)
	}

	second, err := templateRepo.PutTemplates(ctx, &core.Template{
		Name: "standard", Category: "PHP", Content: "v2", Active: true,
	})
	if err != nil {
		t.Fatalf("Failed to re-put template: %v", err)
	}

	if first[0].Id != second[0].Id {
		t.Fatalf("Expected stable template ID, got %d then %d", first[0].Id, second[0].Id)
	}

	got, err := templateRepo.ActiveTemplate(ctx, "PHP")
	if err != nil {
		t.Fatalf("Failed to get active template: %v", err)
	}

	if got.Content != "v2" {
		t.Fatalf("Expected updated content, got %q", got.Content)
	}
}
