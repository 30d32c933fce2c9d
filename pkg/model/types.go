package model

import (
	"encoding/json"
	"time"
)

// FieldKind is the closed enumeration of field variants understood by the
// mapping engine.
type FieldKind string

const (
	FieldKindText           FieldKind = "text"
	FieldKindMultipleChoice FieldKind = "multiple-choice"
	FieldKindSingleChoice   FieldKind = "single-choice"
	FieldKindUnknown        FieldKind = "unknown"
)

// IsValid reports whether k is one of the declared kinds.
func (k FieldKind) IsValid() bool {
	switch k {
	case FieldKindText, FieldKindMultipleChoice, FieldKindSingleChoice, FieldKindUnknown:
		return true
	default:
		return false
	}
}

// HasProposals reports whether fields of this kind carry a proposal list.
func (k FieldKind) HasProposals() bool {
	return k == FieldKindMultipleChoice || k == FieldKindSingleChoice
}

// ProposalSeparator joins proposal labels inside the raw `values` string.
const ProposalSeparator = "||"

// FieldDefinition describes one question of a form. Proposals is only
// populated for choice kinds and its order is significant: answer fragments
// reference proposals by 1-based position.
type FieldDefinition struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Kind      FieldKind `json:"kind" yaml:"kind"`
	Proposals []string  `json:"proposals,omitempty" yaml:"proposals,omitempty"`
	TypeCode  string    `json:"typeCode,omitempty" yaml:"typeCode,omitempty"`
}

// Answer is the read-only projection of one field's answer inside a
// submission. Value is set for text-like fields, Responses for
// multiple-choice fields (nil entries are proposals left unanswered) and
// Response for single-choice fields.
type Answer struct {
	ID        string    `json:"id" yaml:"id"`
	FieldName string    `json:"fieldName" yaml:"fieldName"`
	Kind      FieldKind `json:"kind" yaml:"kind"`
	Proposals []string  `json:"proposals,omitempty" yaml:"proposals,omitempty"`
	Responses []*string `json:"responses,omitempty" yaml:"responses,omitempty"`
	Response  *string   `json:"response,omitempty" yaml:"response,omitempty"`
	Value     *string   `json:"value,omitempty" yaml:"value,omitempty"`
}

// multipleChoiceAnswer is the wire shape of a multiple-choice answer: proposals
// and responses are always present, even when the field has no proposals.
type multipleChoiceAnswer struct {
	ID        string    `json:"id" yaml:"id"`
	FieldName string    `json:"fieldName" yaml:"fieldName"`
	Kind      FieldKind `json:"kind" yaml:"kind"`
	Proposals []string  `json:"proposals" yaml:"proposals"`
	Responses []*string `json:"responses" yaml:"responses"`
}

func (a Answer) multipleChoice() multipleChoiceAnswer {
	out := multipleChoiceAnswer{
		ID:        a.ID,
		FieldName: a.FieldName,
		Kind:      a.Kind,
		Proposals: a.Proposals,
		Responses: a.Responses,
	}
	if out.Proposals == nil {
		out.Proposals = []string{}
	}
	if out.Responses == nil {
		out.Responses = []*string{}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Kind == FieldKindMultipleChoice {
		return json.Marshal(a.multipleChoice())
	}
	type plain Answer
	return json.Marshal(plain(a))
}

// MarshalYAML implements yaml.Marshaler.
func (a Answer) MarshalYAML() (any, error) {
	if a.Kind == FieldKindMultipleChoice {
		return a.multipleChoice(), nil
	}
	type plain Answer
	return plain(a), nil
}

// Submission is one normalised submission: answers follow the form's field
// order and include fields the submitter left blank.
type Submission struct {
	ID      string   `json:"id" yaml:"id"`
	Answers []Answer `json:"answers" yaml:"answers"`
}

// FormSummary is a single entry of the upstream form listing.
type FormSummary struct {
	ID   FlexString `json:"id" yaml:"id"`
	Name string     `json:"name" yaml:"name"`
}

// FormDetails carries the identifying fields of a form alongside the raw
// payload so callers can inspect attributes this module does not model.
type FormDetails struct {
	ID   FlexString      `json:"id" yaml:"id"`
	Name string          `json:"name" yaml:"name"`
	Raw  json.RawMessage `json:"raw,omitempty" yaml:"-"`
}

// Export is the envelope produced by one harvest run and handed to renderers.
type Export struct {
	RunID       string            `json:"runId" yaml:"runId"`
	FormID      string            `json:"formId" yaml:"formId"`
	FetchedAt   time.Time         `json:"fetchedAt" yaml:"fetchedAt"`
	Fields      []FieldDefinition `json:"fields" yaml:"fields"`
	Submissions []Submission      `json:"submissions" yaml:"submissions"`
	Warnings    []Warning         `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}
