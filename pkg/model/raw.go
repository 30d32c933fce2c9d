package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexString decodes JSON strings, numbers and booleans into their textual
// form. Upstream payloads are inconsistent about quoting identifiers and
// answer values, so every scalar is normalised to a string on the way in.
type FlexString string

// String returns the decoded text.
func (s FlexString) String() string {
	return string(s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("model: decode string: %w", err)
		}
		*s = FlexString(text)
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return fmt.Errorf("model: compact value: %w", err)
		}
		*s = FlexString(buf.String())
	default:
		// numbers and booleans keep their literal spelling
		*s = FlexString(trimmed)
	}
	return nil
}

// RawField is a field definition as returned by the upstream fields endpoint.
// Type holds the classifier code; it is usually numeric but string aliases are
// accepted as well. Every member is a FlexString so one malformed entry
// cannot fail the decoding of the whole list.
type RawField struct {
	ID     FlexString `json:"id"`
	Name   FlexString `json:"name"`
	Type   FlexString `json:"type"`
	Values FlexString `json:"values,omitempty"`
}

// Fragment is one raw (fieldid, value) pair of a submission. Scalar fields
// usually carry their answer in FieldValue, multi-valued fields in Value; a
// nil pointer means the key was absent from the payload.
type Fragment struct {
	FieldID    FlexString  `json:"fieldid"`
	FieldValue *FlexString `json:"fieldvalue,omitempty"`
	Value      *FlexString `json:"value,omitempty"`
}

// ScalarValue returns the answer of a scalar field: fieldvalue, falling back to
// value.
func (f Fragment) ScalarValue() (string, bool) {
	return pick(f.FieldValue, f.Value)
}

// SlotValue returns the answer of a multi-valued field: value, falling back to
// fieldvalue.
func (f Fragment) SlotValue() (string, bool) {
	return pick(f.Value, f.FieldValue)
}

func pick(first, second *FlexString) (string, bool) {
	if first != nil {
		return first.String(), true
	}
	if second != nil {
		return second.String(), true
	}
	return "", false
}

// FragmentList decodes the `field` member of a submission. The upstream
// service emits a bare object instead of an array when a submission holds a
// single fragment.
type FragmentList []Fragment

// UnmarshalJSON implements json.Unmarshaler.
func (l *FragmentList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}
	if trimmed[0] == '{' {
		var single Fragment
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return fmt.Errorf("model: decode fragment: %w", err)
		}
		*l = FragmentList{single}
		return nil
	}
	var list []Fragment
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return fmt.Errorf("model: decode fragments: %w", err)
	}
	*l = list
	return nil
}

// RawSubmission is a submission as returned by the upstream submissions
// endpoint.
type RawSubmission struct {
	ID      FlexString `json:"id"`
	Content struct {
		Fields struct {
			Field FragmentList `json:"field"`
		} `json:"fields"`
	} `json:"content"`
}

// Fragments returns the submission's answer fragments.
func (s RawSubmission) Fragments() []Fragment {
	return s.Content.Fields.Field
}

// NewRawSubmission builds a RawSubmission from an id and its fragments.
func NewRawSubmission(id string, fragments ...Fragment) RawSubmission {
	var raw RawSubmission
	raw.ID = FlexString(id)
	raw.Content.Fields.Field = fragments
	return raw
}

// NewFragment returns a fragment carrying value under `value` when the id is
// compound (contains "_") and under `fieldvalue` otherwise, mirroring how the
// upstream service encodes answers.
func NewFragment(fieldID, value string) Fragment {
	v := FlexString(value)
	frag := Fragment{FieldID: FlexString(fieldID)}
	if strings.Contains(fieldID, "_") {
		frag.Value = &v
	} else {
		frag.FieldValue = &v
	}
	return frag
}
