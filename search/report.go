package search

import (
	"math"

	"github.com/quillside/proposia/core"
)

// queryExcerptLength caps the query text echoed back in a report.
const queryExcerptLength = 150

// ReportEntry is one display-ready row of a search report.
type ReportEntry struct {
	Title             string         `json:"title"`
	SimilarityPercent int            `json:"similarity_percent"`
	Relevance         core.Relevance `json:"relevance"`
	Source            core.Source    `json:"source"`
}

// Report is a display-ready projection of a result set. Percentages are
// rounded and clamped for presentation only; ranking always uses the raw
// scores.
type Report struct {
	QueryExcerpt string        `json:"query_excerpt"`
	TotalFound   int           `json:"total_found"`
	Entries      []ReportEntry `json:"entries"`
}

// BuildReport projects ranked results into a report for human display.
func BuildReport(query string, results []*core.SearchResult) *Report {
	report := &Report{
		QueryExcerpt: excerpt(query, queryExcerptLength),
		TotalFound:   len(results),
		Entries:      make([]ReportEntry, 0, len(results)),
	}

	for _, result := range results {
		report.Entries = append(report.Entries, ReportEntry{
			Title:             result.Title,
			SimilarityPercent: similarityPercent(result.Score),
			Relevance:         result.Relevance,
			Source:            result.Source,
		})
	}

	return report
}

// similarityPercent rounds a raw score to a whole percentage and clamps it
// to [0, 100] for display.
func similarityPercent(score float64) int {
	percent := int(math.Round(score * 100))
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// excerpt truncates text to at most n runes.
func excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
