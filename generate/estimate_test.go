package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillside/proposia/ai/mock"
	"github.com/quillside/proposia/core"
)

func TestExtractFeatures(t *testing.T) {
	ctx := context.Background()

	t.Run("ParsesJSONList", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateJSONFunc = func(ctx context.Context, system, user string) (string, error) {
			return `{"features": ["user authentication", "payment gateway", "admin dashboard"]}`, nil
		}

		features := ExtractFeatures(ctx, generator, "store with login and payments", testLogger())
		assert.Equal(t, []string{"user authentication", "payment gateway", "admin dashboard"}, features)
	})

	t.Run("ProviderFailureUsesHeuristic", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateJSONFunc = func(ctx context.Context, system, user string) (string, error) {
			return "", errors.New("model not loaded")
		}

		features := ExtractFeatures(ctx, generator, "short requirements", testLogger())
		assert.Len(t, features, 3)
	})

	t.Run("MalformedPayloadUsesHeuristic", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		generator.GenerateJSONFunc = func(ctx context.Context, system, user string) (string, error) {
			return "not json at all", nil
		}

		features := ExtractFeatures(ctx, generator, "short requirements", testLogger())
		assert.Len(t, features, 3)
	})

	t.Run("EmptyListUsesHeuristic", func(t *testing.T) {
		generator := mock.NewMockGenerator()

		// Default mock returns "{}", which parses but has no features.
		features := ExtractFeatures(ctx, generator, "short requirements", testLogger())
		assert.Len(t, features, 3)
	})
}

func TestHeuristicFeatures(t *testing.T) {
	t.Run("FloorOfThree", func(t *testing.T) {
		assert.Len(t, heuristicFeatures("tiny"), 3)
	})

	t.Run("ScalesWithWordCount", func(t *testing.T) {
		// 250 words gives five features.
		text := strings.Repeat("word ", 250)
		assert.Len(t, heuristicFeatures(text), 5)
	})

	t.Run("CapOfFifteen", func(t *testing.T) {
		text := strings.Repeat("word ", 5000)
		assert.Len(t, heuristicFeatures(text), 15)
	})
}

func TestCalculateEstimate(t *testing.T) {
	rules := []*core.PricingRule{
		{
			FeatureName:       "authentication",
			BaseCost:          800,
			TimeHours:         16,
			SimpleMultiplier:  0.8,
			MediumMultiplier:  1.0,
			ComplexMultiplier: 1.4,
		},
		{
			FeatureName:      "payment",
			BaseCost:         1200,
			TimeHours:        24,
			MediumMultiplier: 1.0,
		},
	}

	t.Run("MatchedRules", func(t *testing.T) {
		est := CalculateEstimate([]string{"user authentication", "payment gateway"}, rules, core.ComplexityMedium)

		// 500 base + 800 + 1200, hours 80 base + 16 + 24 = 120 -> 3 weeks.
		assert.Equal(t, 2500.0, est.Cost)
		assert.Equal(t, 3, est.TimelineWeeks)
	})

	t.Run("BidirectionalSubstringMatch", func(t *testing.T) {
		// Rule name contains the feature name.
		est := CalculateEstimate([]string{"auth"}, rules, core.ComplexityMedium)
		assert.Equal(t, 500.0+800.0, est.Cost)
	})

	t.Run("UnmatchedFeatureUsesDefaults", func(t *testing.T) {
		est := CalculateEstimate([]string{"blockchain integration"}, rules, core.ComplexityMedium)

		assert.Equal(t, BaseProjectCost+DefaultFeatureCost, est.Cost)
		// 80 base hours + 8 default hours = 88 -> 3 weeks.
		assert.Equal(t, 3, est.TimelineWeeks)
	})

	t.Run("SimpleDiscountsTotal", func(t *testing.T) {
		est := CalculateEstimate([]string{"user authentication"}, rules, core.ComplexitySimple)

		// (500 + 800*0.8) * 0.8 = 912.
		assert.Equal(t, 912.0, est.Cost)
	})

	t.Run("ComplexInflatesTotal", func(t *testing.T) {
		est := CalculateEstimate([]string{"user authentication"}, rules, core.ComplexityComplex)

		// (500 + 800*1.4) * 1.5 = 2430.
		assert.Equal(t, 2430.0, est.Cost)
		// Hours (80 + 16*1.4) * 1.5 = 153.6 -> ceil 4 weeks.
		assert.Equal(t, 4, est.TimelineWeeks)
	})

	t.Run("TimelineFloor", func(t *testing.T) {
		est := CalculateEstimate(nil, rules, core.ComplexitySimple)
		assert.GreaterOrEqual(t, est.TimelineWeeks, BaseTimelineWeeks)
	})

	t.Run("ZeroMultiplierFallsBackToOne", func(t *testing.T) {
		// The payment rule has no simple multiplier configured.
		est := CalculateEstimate([]string{"payment gateway"}, rules, core.ComplexitySimple)

		// (500 + 1200*1) * 0.8 = 1360.
		assert.Equal(t, 1360.0, est.Cost)
	})
}
