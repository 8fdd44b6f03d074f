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

package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/quillside/proposia/ai"
	"github.com/quillside/proposia/core"
)

// Estimate defaults. Unmatched features get a flat cost and a flat number
// of hours; every project carries a floor cost and a floor timeline.
const (
	BaseProjectCost    = 500.0
	DefaultFeatureCost = 300.0
	DefaultFeatureHrs  = 8.0
	BaseTimelineWeeks  = 2
	hoursPerWeek       = 40.0
)

// Estimate is the priced outcome of matching extracted features against
// the pricing rules.
type Estimate struct {
	Features      []string
	Cost          float64
	TimelineWeeks int
}

type featureList struct {
	Features []string `json:"features"`
}

// ExtractFeatures asks the LLM for a JSON list of concrete features named
// in the requirements. On any provider or parse failure it degrades to a
// word-count heuristic so estimation can always proceed.
func ExtractFeatures(ctx context.Context, generator ai.Generator, requirements string, logger *slog.Logger) []string {
	prompt := fmt.Sprintf(featuresPromptTemplate, requirements)

	answer, err := generator.GenerateJSON(ctx, featuresSystemPrompt, prompt)
	if err != nil {
		logger.Warn("feature extraction failed, using heuristic", "err", err)
		return heuristicFeatures(requirements)
	}

	var parsed featureList
	if err := json.Unmarshal([]byte(answer), &parsed); err != nil || len(parsed.Features) == 0 {
		logger.Debug("feature extraction returned unusable payload", "payload", answer)
		return heuristicFeatures(requirements)
	}

	return parsed.Features
}

// heuristicFeatures sizes the feature set from the requirements length:
// one feature per fifty words, clamped to [3, 15].
func heuristicFeatures(requirements string) []string {
	count := len(strings.Fields(requirements)) / 50
	if count < 3 {
		count = 3
	}
	if count > 15 {
		count = 15
	}

	features := make([]string, count)
	for i := range features {
		features[i] = fmt.Sprintf("feature %d", i+1)
	}
	return features
}

// globalMultiplier scales the whole estimate by project complexity.
func globalMultiplier(complexity core.Complexity) float64 {
	switch complexity {
	case core.ComplexitySimple:
		return 0.8
	case core.ComplexityComplex:
		return 1.5
	default:
		return 1.0
	}
}

// CalculateEstimate prices the feature list against the pricing rules.
// A feature matches a rule when either lowercased name contains the
// other; unmatched features fall back to the flat default cost and hours.
// The complexity multiplier applies to the grand total, and the timeline
// never drops below the base weeks.
func CalculateEstimate(features []string, rules []*core.PricingRule, complexity core.Complexity) Estimate {
	cost := BaseProjectCost
	hours := BaseTimelineWeeks * hoursPerWeek

	for _, feature := range features {
		rule := matchRule(feature, rules)
		if rule == nil {
			cost += DefaultFeatureCost
			hours += DefaultFeatureHrs
			continue
		}
		mult := rule.MultiplierFor(complexity)
		cost += rule.BaseCost * mult
		hours += rule.TimeHours * mult
	}

	mult := globalMultiplier(complexity)
	cost = math.Round(cost * mult)

	weeks := int(math.Ceil(hours * mult / hoursPerWeek))
	if weeks < BaseTimelineWeeks {
		weeks = BaseTimelineWeeks
	}

	return Estimate{Features: features, Cost: cost, TimelineWeeks: weeks}
}

func matchRule(feature string, rules []*core.PricingRule) *core.PricingRule {
	lowered := strings.ToLower(feature)
	for _, rule := range rules {
		name := strings.ToLower(rule.FeatureName)
		if strings.Contains(lowered, name) || strings.Contains(name, lowered) {
			return rule
		}
	}
	return nil
}
