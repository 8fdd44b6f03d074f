package search

import "github.com/quillside/proposia/core"

// Relevance tier thresholds. They apply uniformly to cosine scores and to
// lexical containment scores, even though the two live on different scales;
// lexical results naturally skew toward lower tiers.
const (
	HighRelevanceThreshold   = 0.70
	MediumRelevanceThreshold = 0.50
)

// Classify maps a similarity score to a discrete relevance tier.
func Classify(score float64) core.Relevance {
	switch {
	case score >= HighRelevanceThreshold:
		return core.RelevanceHigh
	case score >= MediumRelevanceThreshold:
		return core.RelevanceMedium
	default:
		return core.RelevanceLow
	}
}
