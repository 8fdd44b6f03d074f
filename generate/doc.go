// Package generate drafts client proposals from free-form requirements.
//
// A Generator runs the full drafting flow: detect the project type and
// complexity, extract billable features, price them against the stored
// pricing rules, retrieve similar past work through the search package,
// assemble the generation prompt with template content and excerpts of
// the retrieved proposals, call the LLM, and persist the result as a
// draft proposal. Detection and feature extraction degrade to defaults
// on provider failure so a draft is always produced when storage and
// the final generation call succeed.
package generate
