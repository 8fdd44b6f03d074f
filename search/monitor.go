package search

import "github.com/quillside/proposia/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query, category string)
	AfterPoolFetch(samples, proposals int)
	AfterQueryEmbedding(dimensions int, degraded bool)
	VectorHit(result *core.SearchResult)
	LexicalFallback(candidates int)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)                  {}
func (n *noopMonitor) AfterPoolFetch(_, _ int)            {}
func (n *noopMonitor) AfterQueryEmbedding(_ int, _ bool)  {}
func (n *noopMonitor) VectorHit(_ *core.SearchResult)     {}
func (n *noopMonitor) LexicalFallback(_ int)              {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)      {}
