package generate

import (
	"fmt"
	"strings"

	"github.com/quillside/proposia/core"
)

const categorySystemPrompt = "You are a technical expert. Return only the technology stack name, nothing else."

const categoryPromptTemplate = `Analyze the following project requirements and determine the most appropriate technology stack.
Return ONLY one of these options: MERN, MEAN, WordPress, PHP, Shopify

Requirements:
%s

Consider:
- MERN: Web applications, SaaS, dashboards, real-time features
- MEAN: Enterprise applications, complex SPAs, TypeScript projects
- WordPress: Blogs, business websites, content-heavy sites, portfolios
- PHP: Custom backend solutions, legacy integrations
- Shopify: E-commerce, online stores, product sales

Return only the stack name (e.g., "MERN" or "Shopify"):`

const complexitySystemPrompt = "Return only: simple, medium, or complex. Nothing else."

const complexityPromptTemplate = `Analyze the complexity of this project based on requirements. Return ONLY: simple, medium, or complex

Requirements:
%s

Consider:
- simple: Basic features, standard functionality, <10 features
- medium: Moderate features, some custom work, 10-20 features
- complex: Advanced features, custom integrations, >20 features, enterprise-level

Return only: simple, medium, or complex`

const featuresSystemPrompt = `Return a JSON object with a "features" array. Example: {"features": ["Feature 1", "Feature 2"]}`

const featuresPromptTemplate = `Extract a list of specific features mentioned in these requirements.
Return ONLY a JSON array of feature names, nothing else.

Requirements:
%s

Example format: ["User Authentication", "Payment Gateway", "Admin Dashboard"]`

const proposalSystemPrompt = `You are an expert proposal writer for an IT project management company. Always generate a complete, professional proposal even if you don't have all the context.

Your role:
1. Analyze client requirements carefully
2. Identify the best technology stack
3. Generate a professional, detailed proposal

Writing Style:
- Professional but friendly and conversational
- Use simple language, avoid jargon
- Be specific with timelines and costs
- Show understanding of client needs
- Structure: Executive Summary, Understanding, Solution, Technical, Timeline, Pricing, Next Steps

Rules:
- Always base estimates on similar past projects
- Be realistic with timelines
- Explain WHY you chose a particular tech stack
- Include specific features, not generic statements
- Make it sound human, not robotic
- Use the client's language/terminology from their requirements

Output Format:
Return a complete proposal in Markdown format with proper headings and structure.`

// contextExcerptLength caps how much of each similar proposal is quoted in
// the generation prompt.
const contextExcerptLength = 1000

// buildProposalPrompt assembles the user prompt for proposal generation from
// the request, the estimate, the ranked similar proposals, and the template.
func buildProposalPrompt(req *Request, category string, complexity core.Complexity, cost float64, weeks int, similar []*core.SearchResult, templateContent string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a professional proposal for:\n\n")
	fmt.Fprintf(&b, "Client Name: %s\n", req.ClientName)
	if req.ClientEmail != "" {
		fmt.Fprintf(&b, "Client Email: %s\n", req.ClientEmail)
	}
	fmt.Fprintf(&b, "\nRequirements:\n%s\n\n", req.Requirements)
	fmt.Fprintf(&b, "Project Type: %s\n", category)
	fmt.Fprintf(&b, "Complexity: %s\n", complexity)
	fmt.Fprintf(&b, "Estimated Cost: $%.0f\n", cost)
	fmt.Fprintf(&b, "Estimated Timeline: %d weeks\n", weeks)

	if len(similar) > 0 {
		b.WriteString("\nSimilar Past Proposals for Reference:\n")
		for i, result := range similar {
			fmt.Fprintf(&b, "Example %d:\n%s...\n\n", i+1, excerpt(result.Content, contextExcerptLength))
		}
	}

	if templateContent != "" {
		fmt.Fprintf(&b, "\nTemplate Structure (use as guide, but personalize):\n%s\n", templateContent)
	}

	b.WriteString("\nGenerate a complete, professional proposal that addresses all requirements. Replace placeholders like {CLIENT_NAME}, {REQUIREMENTS_SUMMARY}, etc. with actual content.")

	return b.String()
}

// excerpt truncates text to at most n runes.
func excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
