package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "e-commerce platform with shopping cart",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestProposalStatus_Terminal(t *testing.T) {
	tests := []struct {
		status ProposalStatus
		want   bool
	}{
		{StatusDraft, false},
		{StatusSent, false},
		{StatusAccepted, true},
		{StatusRejected, false},
		{StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("Terminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProposalStatus_String(t *testing.T) {
	if got := StatusDraft.String(); got != "draft" {
		t.Errorf("StatusDraft.String() = %q", got)
	}
	if got := ProposalStatus(99).String(); got != "unknown" {
		t.Errorf("unknown status String() = %q", got)
	}
}

func TestPricingRule_MultiplierFor(t *testing.T) {
	rule := PricingRule{
		FeatureName:       "Payment Gateway",
		SimpleMultiplier:  0.8,
		MediumMultiplier:  1.0,
		ComplexMultiplier: 1.5,
	}

	if got := rule.MultiplierFor(ComplexitySimple); got != 0.8 {
		t.Errorf("MultiplierFor(simple) = %v, want 0.8", got)
	}
	if got := rule.MultiplierFor(ComplexityComplex); got != 1.5 {
		t.Errorf("MultiplierFor(complex) = %v, want 1.5", got)
	}

	// Unset multipliers fall back to 1
	bare := PricingRule{FeatureName: "CMS"}
	if got := bare.MultiplierFor(ComplexityMedium); got != 1.0 {
		t.Errorf("MultiplierFor with unset multiplier = %v, want 1", got)
	}
	if got := rule.MultiplierFor(Complexity("weird")); got != 1.0 {
		t.Errorf("MultiplierFor with unknown complexity = %v, want 1", got)
	}
}

func TestSampleProposal_EmbeddingText(t *testing.T) {
	sample := SampleProposal{
		Title:               "Online Store",
		RequirementsExcerpt: "shopping cart",
		Content:             "full proposal body",
	}

	want := "Online Store shopping cart full proposal body"
	if got := sample.EmbeddingText(); got != want {
		t.Errorf("EmbeddingText() = %q, want %q", got, want)
	}
}
