package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quillside/proposia/ai"
	"github.com/quillside/proposia/core"
)

// Categories lists the supported project type tags.
var Categories = []string{"MERN", "MEAN", "WordPress", "PHP", "Shopify"}

// DefaultCategory is used when detection fails or returns an unknown label.
const DefaultCategory = "MERN"

// DetectCategory classifies requirements into one of the supported project
// types via the LLM. Any provider failure or unrecognized label falls back
// to DefaultCategory; detection never fails the caller.
func DetectCategory(ctx context.Context, generator ai.Generator, requirements string, logger *slog.Logger) string {
	prompt := fmt.Sprintf(categoryPromptTemplate, requirements)

	answer, err := generator.Generate(ctx, categorySystemPrompt, prompt)
	if err != nil {
		logger.Warn("category detection failed, using default", "err", err)
		return DefaultCategory
	}

	answer = strings.TrimSpace(answer)
	for _, category := range Categories {
		if strings.EqualFold(answer, category) {
			return category
		}
	}

	logger.Debug("category detection returned unknown label", "label", answer)
	return DefaultCategory
}

// DetectComplexity classifies requirements as simple, medium, or complex via
// the LLM. Failures and unknown labels fall back to medium.
func DetectComplexity(ctx context.Context, generator ai.Generator, requirements string, logger *slog.Logger) core.Complexity {
	prompt := fmt.Sprintf(complexityPromptTemplate, requirements)

	answer, err := generator.Generate(ctx, complexitySystemPrompt, prompt)
	if err != nil {
		logger.Warn("complexity detection failed, using default", "err", err)
		return core.ComplexityMedium
	}

	detected := core.Complexity(strings.ToLower(strings.TrimSpace(answer)))
	if !detected.Valid() {
		logger.Debug("complexity detection returned unknown label", "label", answer)
		return core.ComplexityMedium
	}

	return detected
}
