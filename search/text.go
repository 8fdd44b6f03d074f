package search

import "strings"

// minTokenLength filters out short-word noise ("a", "the", "for").
const minTokenLength = 3

// tokenSet splits text on whitespace, lowercases, and keeps tokens longer
// than minTokenLength characters.
func tokenSet(text string) map[string]bool {
	words := strings.Fields(text)
	set := make(map[string]bool, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(word)
		if len([]rune(cleaned)) > minTokenLength {
			set[cleaned] = true
		}
	}

	return set
}

// ContainmentScore computes the fraction of the query's significant tokens
// that also appear in the candidate text. This is an asymmetric containment
// ratio, not a symmetric Jaccard index: a candidate containing every query
// token scores 1.0 no matter how much extra text it carries. An empty query
// token set scores 0.
func ContainmentScore(query, candidate string) float64 {
	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 {
		return 0
	}

	candidateTokens := tokenSet(candidate)
	matched := 0
	for token := range queryTokens {
		if candidateTokens[token] {
			matched++
		}
	}

	return float64(matched) / float64(len(queryTokens))
}
