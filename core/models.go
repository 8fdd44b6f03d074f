package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
// Identifiers are namespaced per pool: a sample and a proposal may share
// the same numeric ID without colliding.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Source identifies which candidate pool a search result came from.
type Source string

const (
	// SourceSample marks results drawn from approved sample proposals.
	SourceSample Source = "sample"
	// SourcePrevious marks results drawn from previously generated proposals.
	SourcePrevious Source = "previous"
)

// ProposalStatus tracks the lifecycle of a generated proposal.
type ProposalStatus int

const (
	// StatusDraft is the initial status of a freshly generated proposal.
	StatusDraft ProposalStatus = iota + 1
	// StatusSent means the proposal was delivered to the client.
	StatusSent
	// StatusAccepted means the client accepted the proposal.
	StatusAccepted
	// StatusRejected means the client declined the proposal.
	StatusRejected
	// StatusCompleted means the accepted project was delivered.
	StatusCompleted
)

// String returns the lowercase name of the status.
func (s ProposalStatus) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusSent:
		return "sent"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	case StatusCompleted:
		return "completed"
	}
	return "unknown"
}

// Terminal reports whether the status makes a proposal eligible as a
// retrieval candidate. Only accepted or completed proposals are searched.
func (s ProposalStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusCompleted
}

// Complexity buckets a project by how much custom work it needs.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// Valid reports whether c is one of the known complexity values.
func (c Complexity) Valid() bool {
	return c == ComplexitySimple || c == ComplexityMedium || c == ComplexityComplex
}

// Relevance is the discrete tier assigned to a similarity score for display.
type Relevance string

const (
	RelevanceHigh   Relevance = "high"
	RelevanceMedium Relevance = "medium"
	RelevanceLow    Relevance = "low"
)

// SampleProposal is an approved reference proposal used to seed generation.
// The Vector field is populated asynchronously by the indexing pipeline and
// may be empty for records that were never embedded.
type SampleProposal struct {
	Id                  ID
	Title               string
	Category            string // project type tag, e.g. "MERN", "Shopify"
	Content             string
	RequirementsExcerpt string
	Cost                float64
	TimelineWeeks       int
	Approved            bool
	Vector              []float32
	InsertedAt          time.Time
	UpdatedAt           time.Time
}

// EmbeddingText returns the text that represents this sample for embedding.
func (s *SampleProposal) EmbeddingText() string {
	return s.Title + " " + s.RequirementsExcerpt + " " + s.Content
}

// Proposal is a generated client proposal. Once accepted or completed it
// joins the retrieval candidate pool alongside the samples.
type Proposal struct {
	Id            ID
	ClientName    string
	ClientEmail   string
	Category      string
	Requirements  string
	Generated     string
	Cost          float64
	TimelineWeeks int
	Complexity    Complexity
	Status        ProposalStatus
	Vector        []float32
	InsertedAt    time.Time
	UpdatedAt     time.Time
}

// PricingRule prices a single named feature. Category is empty for rules
// that apply to every project type.
type PricingRule struct {
	Id                ID
	FeatureName       string
	Category          string
	BaseCost          float64
	TimeHours         float64
	SimpleMultiplier  float64
	MediumMultiplier  float64
	ComplexMultiplier float64
	InsertedAt        time.Time
	UpdatedAt         time.Time
}

// MultiplierFor returns the cost multiplier for the given complexity.
// Unknown or zero-valued multipliers fall back to 1.
func (r *PricingRule) MultiplierFor(c Complexity) float64 {
	var m float64
	switch c {
	case ComplexitySimple:
		m = r.SimpleMultiplier
	case ComplexityMedium:
		m = r.MediumMultiplier
	case ComplexityComplex:
		m = r.ComplexMultiplier
	}
	if m == 0 {
		return 1
	}
	return m
}

// Template is a proposal skeleton for a project type, used to structure
// the generation prompt.
type Template struct {
	Id         ID
	Name       string
	Category   string
	Content    string
	Active     bool
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// SearchResult is an ephemeral, display-ready match from one of the two
// candidate pools. It is constructed fresh per search call and never stored.
type SearchResult struct {
	Source        Source
	Id            ID
	Title         string
	Category      string
	Content       string
	Cost          float64
	TimelineWeeks int
	Score         float64
	Relevance     Relevance
}
