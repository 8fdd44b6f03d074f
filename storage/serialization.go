// Copyright 2025 Quillside Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/quillside/proposia/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalSampleProposal serializes a SampleProposal to bytes.
func MarshalSampleProposal(sample *core.SampleProposal) []byte {
	buf := make([]byte, core.SampleProposalMUS.Size(*sample))
	core.SampleProposalMUS.Marshal(*sample, buf)
	return buf
}

// UnmarshalSampleProposal deserializes a SampleProposal from bytes.
func UnmarshalSampleProposal(data []byte) (*core.SampleProposal, error) {
	sample, _, err := core.SampleProposalMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

// MarshalProposal serializes a Proposal to bytes.
func MarshalProposal(proposal *core.Proposal) []byte {
	buf := make([]byte, core.ProposalMUS.Size(*proposal))
	core.ProposalMUS.Marshal(*proposal, buf)
	return buf
}

// UnmarshalProposal deserializes a Proposal from bytes.
func UnmarshalProposal(data []byte) (*core.Proposal, error) {
	proposal, _, err := core.ProposalMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// MarshalPricingRule serializes a PricingRule to bytes.
func MarshalPricingRule(rule *core.PricingRule) []byte {
	buf := make([]byte, core.PricingRuleMUS.Size(*rule))
	core.PricingRuleMUS.Marshal(*rule, buf)
	return buf
}

// UnmarshalPricingRule deserializes a PricingRule from bytes.
func UnmarshalPricingRule(data []byte) (*core.PricingRule, error) {
	rule, _, err := core.PricingRuleMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// MarshalTemplate serializes a Template to bytes.
func MarshalTemplate(template *core.Template) []byte {
	buf := make([]byte, core.TemplateMUS.Size(*template))
	core.TemplateMUS.Marshal(*template, buf)
	return buf
}

// UnmarshalTemplate deserializes a Template from bytes.
func UnmarshalTemplate(data []byte) (*core.Template, error) {
	template, _, err := core.TemplateMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &template, nil
}
