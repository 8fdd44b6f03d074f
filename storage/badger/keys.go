package badger

import (
	"fmt"

	"github.com/quillside/proposia/core"
)

// Key prefixes for different data types
const (
	samplePrefix   = "samrec"
	sampleIDSeq    = "samrecseq"
	proposalPrefix = "prorec"
	proposalIDSeq  = "prorecseq"
	rulePrefix     = "rulrec"
	templatePrefix = "tplrec"
)

// makeSampleKey generates a key for a sample proposal by ID.
func makeSampleKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", samplePrefix, id))
}

// makeProposalKey generates a key for a proposal by ID.
func makeProposalKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", proposalPrefix, id))
}

// makeRuleKey generates a key for a pricing rule by ID.
func makeRuleKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", rulePrefix, id))
}

// makeTemplateKey generates a key for a template by ID.
func makeTemplateKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", templatePrefix, id))
}

// ruleContentID derives the content-based upsert key for a pricing rule.
func ruleContentID(rule *core.PricingRule) core.ID {
	return core.IDFromContent(rule.FeatureName + "|" + rule.Category)
}

// templateContentID derives the content-based upsert key for a template.
func templateContentID(template *core.Template) core.ID {
	return core.IDFromContent(template.Name + "|" + template.Category)
}
