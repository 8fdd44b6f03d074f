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
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/quillside/proposia/core"
	"github.com/quillside/proposia/indexing"
)

var seedSamples = []*core.SampleProposal{
	{
		Title:               "E-commerce platform for artisan goods",
		Category:            "Shopify",
		RequirementsExcerpt: "online store product catalog checkout payments inventory",
		Content:             "Built a full Shopify storefront with a curated product catalog, custom checkout flow, Stripe payments, and inventory sync against the client's warehouse system. Delivered in eight weeks with a two-week content migration phase.",
		Cost:                14500,
		TimelineWeeks:       8,
		Approved:            true,
	},
	{
		Title:               "SaaS analytics dashboard",
		Category:            "MERN",
		RequirementsExcerpt: "dashboard real-time charts user accounts subscription billing",
		Content:             "React dashboard over a Node/Express API with MongoDB, streaming metric updates over websockets, role-based user accounts, and Stripe subscription billing. Phased delivery with a usable beta at week six.",
		Cost:                22000,
		TimelineWeeks:       10,
		Approved:            true,
	},
	{
		Title:               "Company website and blog relaunch",
		Category:            "WordPress",
		RequirementsExcerpt: "marketing website blog contact form SEO content management",
		Content:             "WordPress relaunch with a custom theme, an editorial workflow for the marketing team, contact forms, and an SEO pass across all legacy content. Included training sessions for the content editors.",
		Cost:                6800,
		TimelineWeeks:       4,
		Approved:            true,
	},
	{
		Title:               "Enterprise resource planning portal",
		Category:            "MEAN",
		RequirementsExcerpt: "internal portal approvals workflows reporting single sign-on",
		Content:             "Angular portal backed by Node and MongoDB covering purchase approvals, leave workflows, and monthly reporting, integrated with the client's SAML identity provider. Rolled out department by department over a quarter.",
		Cost:                38000,
		TimelineWeeks:       14,
		Approved:            true,
	},
	{
		Title:               "Legacy booking system modernization",
		Category:            "PHP",
		RequirementsExcerpt: "booking system migration legacy database payment integration",
		Content:             "Incremental rewrite of a legacy PHP booking system: modern framework, migrated twenty years of reservation data, and added online payments while keeping the old system running until cutover.",
		Cost:                19500,
		TimelineWeeks:       9,
		Approved:            true,
	},
}

var seedRules = []*core.PricingRule{
	{FeatureName: "authentication", BaseCost: 800, TimeHours: 16, SimpleMultiplier: 0.8, MediumMultiplier: 1.0, ComplexMultiplier: 1.4},
	{FeatureName: "payment", BaseCost: 1200, TimeHours: 24, SimpleMultiplier: 0.8, MediumMultiplier: 1.0, ComplexMultiplier: 1.5},
	{FeatureName: "dashboard", BaseCost: 1500, TimeHours: 32, SimpleMultiplier: 0.7, MediumMultiplier: 1.0, ComplexMultiplier: 1.6},
	{FeatureName: "admin panel", BaseCost: 1000, TimeHours: 20, SimpleMultiplier: 0.8, MediumMultiplier: 1.0, ComplexMultiplier: 1.3},
	{FeatureName: "contact form", BaseCost: 200, TimeHours: 4, SimpleMultiplier: 1.0, MediumMultiplier: 1.0, ComplexMultiplier: 1.2},
	{FeatureName: "search", BaseCost: 600, TimeHours: 12, SimpleMultiplier: 0.8, MediumMultiplier: 1.0, ComplexMultiplier: 1.5},
	{FeatureName: "api integration", BaseCost: 900, TimeHours: 18, SimpleMultiplier: 0.8, MediumMultiplier: 1.0, ComplexMultiplier: 1.5},
	{FeatureName: "product catalog", Category: "Shopify", BaseCost: 700, TimeHours: 14, SimpleMultiplier: 0.8, MediumMultiplier: 1.0, ComplexMultiplier: 1.4},
	{FeatureName: "checkout", Category: "Shopify", BaseCost: 1100, TimeHours: 22, SimpleMultiplier: 0.9, MediumMultiplier: 1.0, ComplexMultiplier: 1.4},
	{FeatureName: "blog", Category: "WordPress", BaseCost: 400, TimeHours: 8, SimpleMultiplier: 0.9, MediumMultiplier: 1.0, ComplexMultiplier: 1.2},
}

var seedTemplates = []*core.Template{
	{
		Name:     "Standard web project",
		Category: "MERN",
		Active:   true,
		Content: `# Proposal for {CLIENT_NAME}

## Executive Summary
{REQUIREMENTS_SUMMARY}

## Our Understanding
## Proposed Solution
## Technical Approach
## Timeline
## Pricing
## Next Steps`,
	},
	{
		Name:     "Store launch",
		Category: "Shopify",
		Active:   true,
		Content: `# Store Launch Proposal for {CLIENT_NAME}

## Executive Summary
{REQUIREMENTS_SUMMARY}

## Store Setup
## Theme and Branding
## Payments and Shipping
## Launch Timeline
## Investment
## Next Steps`,
	},
	{
		Name:     "Content site",
		Category: "WordPress",
		Active:   true,
		Content: `# Website Proposal for {CLIENT_NAME}

## Executive Summary
{REQUIREMENTS_SUMMARY}

## Site Structure
## Content Management
## Timeline
## Pricing
## Next Steps`,
	},
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	added, err := db.SampleRepository().AddSamples(ctx, seedSamples...)
	if err != nil {
		return fmt.Errorf("failed to seed samples: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Seeded %d samples\n", len(added))

	rules, err := db.PricingRuleRepository().PutRules(ctx, seedRules...)
	if err != nil {
		return fmt.Errorf("failed to seed pricing rules: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Seeded %d pricing rules\n", len(rules))

	templates, err := db.TemplateRepository().PutTemplates(ctx, seedTemplates...)
	if err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Seeded %d templates\n", len(templates))

	// Embed everything up front so searches rank on vectors immediately.
	reembedder := indexing.NewReembedder(db.SampleRepository(), db.ProposalRepository(),
		db.Provider().Embedder(), indexing.DefaultConfig(), os.Stderr)
	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("failed to embed seeded records: %w", err)
	}

	return nil
}
