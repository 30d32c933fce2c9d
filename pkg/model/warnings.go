package model

import "fmt"

// WarningCode classifies non-fatal anomalies found while mapping.
type WarningCode string

const (
	WarningUnsupportedFieldType WarningCode = "unsupported_field_type"
	WarningUnmatchedFragment    WarningCode = "unmatched_fragment"
	WarningInvalidIndex         WarningCode = "invalid_proposal_index"
	WarningIndexOutOfRange      WarningCode = "proposal_out_of_range"
)

// Warning is a non-fatal diagnostic. SubmissionID is empty for warnings raised
// while classifying field definitions.
type Warning struct {
	Code         WarningCode `json:"code" yaml:"code"`
	SubmissionID string      `json:"submissionId,omitempty" yaml:"submissionId,omitempty"`
	FieldID      string      `json:"fieldId,omitempty" yaml:"fieldId,omitempty"`
	Message      string      `json:"message" yaml:"message"`
}

// String formats the warning for human consumption.
func (w Warning) String() string {
	if w.SubmissionID != "" {
		return fmt.Sprintf("%s: submission %s: %s", w.Code, w.SubmissionID, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Warnings is an ordered collection of warnings.
type Warnings []Warning

// Add appends a warning built from the given parts.
func (ws *Warnings) Add(code WarningCode, fieldID, format string, args ...any) {
	*ws = append(*ws, Warning{
		Code:    code,
		FieldID: fieldID,
		Message: fmt.Sprintf(format, args...),
	})
}

// Codes returns the warning codes in order, handy for assertions.
func (ws Warnings) Codes() []WarningCode {
	if len(ws) == 0 {
		return nil
	}
	out := make([]WarningCode, len(ws))
	for i, w := range ws {
		out[i] = w.Code
	}
	return out
}
