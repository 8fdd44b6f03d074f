package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for persisting domain records in the binary MUS format.
// Field order is the wire format; append new fields at the end only.
var (
	IDMUS             = idMUS{}
	SampleProposalMUS = sampleProposalMUS{}
	ProposalMUS       = proposalMUS{}
	PricingRuleMUS    = pricingRuleMUS{}
	TemplateMUS       = templateMUS{}

	vectorMUS = ord.NewSliceSer[float32](raw.Float32)
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	raw, n, err := varint.Uint64.Unmarshal(bs)
	return ID(raw), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// Timestamps are stored as Unix microseconds.

func marshalTime(v time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(v.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (v time.Time, n int, err error) {
	micro, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micro).UTC(), n, nil
}

func sizeTime(v time.Time) (size int) {
	return varint.Int64.Size(v.UnixMicro())
}

func skipTime(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

type sampleProposalMUS struct{}

func (s sampleProposalMUS) Marshal(v SampleProposal, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += ord.String.Marshal(v.RequirementsExcerpt, bs[n:])
	n += raw.Float64.Marshal(v.Cost, bs[n:])
	n += varint.Int.Marshal(v.TimelineWeeks, bs[n:])
	n += ord.Bool.Marshal(v.Approved, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s sampleProposalMUS) Unmarshal(bs []byte) (v SampleProposal, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Category, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.RequirementsExcerpt, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Cost, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.TimelineWeeks, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Approved, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s sampleProposalMUS) Size(v SampleProposal) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Category)
	size += ord.String.Size(v.Content)
	size += ord.String.Size(v.RequirementsExcerpt)
	size += raw.Float64.Size(v.Cost)
	size += varint.Int.Size(v.TimelineWeeks)
	size += ord.Bool.Size(v.Approved)
	size += vectorMUS.Size(v.Vector)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

func (s sampleProposalMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

type proposalMUS struct{}

func (s proposalMUS) Marshal(v Proposal, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.ClientName, bs[n:])
	n += ord.String.Marshal(v.ClientEmail, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += ord.String.Marshal(v.Requirements, bs[n:])
	n += ord.String.Marshal(v.Generated, bs[n:])
	n += raw.Float64.Marshal(v.Cost, bs[n:])
	n += varint.Int.Marshal(v.TimelineWeeks, bs[n:])
	n += ord.String.Marshal(string(v.Complexity), bs[n:])
	n += varint.Int.Marshal(int(v.Status), bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s proposalMUS) Unmarshal(bs []byte) (v Proposal, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.ClientName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ClientEmail, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Category, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Requirements, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Generated, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Cost, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.TimelineWeeks, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var complexity string
	if complexity, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.Complexity = Complexity(complexity)
	n += n1
	var status int
	if status, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.Status = ProposalStatus(status)
	n += n1
	if v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s proposalMUS) Size(v Proposal) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.ClientName)
	size += ord.String.Size(v.ClientEmail)
	size += ord.String.Size(v.Category)
	size += ord.String.Size(v.Requirements)
	size += ord.String.Size(v.Generated)
	size += raw.Float64.Size(v.Cost)
	size += varint.Int.Size(v.TimelineWeeks)
	size += ord.String.Size(string(v.Complexity))
	size += varint.Int.Size(int(v.Status))
	size += vectorMUS.Size(v.Vector)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

func (s proposalMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

type pricingRuleMUS struct{}

func (s pricingRuleMUS) Marshal(v PricingRule, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.FeatureName, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += raw.Float64.Marshal(v.BaseCost, bs[n:])
	n += raw.Float64.Marshal(v.TimeHours, bs[n:])
	n += raw.Float64.Marshal(v.SimpleMultiplier, bs[n:])
	n += raw.Float64.Marshal(v.MediumMultiplier, bs[n:])
	n += raw.Float64.Marshal(v.ComplexMultiplier, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s pricingRuleMUS) Unmarshal(bs []byte) (v PricingRule, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.FeatureName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Category, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.BaseCost, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.TimeHours, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.SimpleMultiplier, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.MediumMultiplier, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ComplexMultiplier, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s pricingRuleMUS) Size(v PricingRule) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.FeatureName)
	size += ord.String.Size(v.Category)
	size += raw.Float64.Size(v.BaseCost)
	size += raw.Float64.Size(v.TimeHours)
	size += raw.Float64.Size(v.SimpleMultiplier)
	size += raw.Float64.Size(v.MediumMultiplier)
	size += raw.Float64.Size(v.ComplexMultiplier)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

func (s pricingRuleMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

type templateMUS struct{}

func (s templateMUS) Marshal(v Template, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += ord.Bool.Marshal(v.Active, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s templateMUS) Unmarshal(bs []byte) (v Template, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Category, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Active, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s templateMUS) Size(v Template) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Category)
	size += ord.String.Size(v.Content)
	size += ord.Bool.Size(v.Active)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

func (s templateMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}
