package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formsubmissions/pkg/model"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

func sanitizer() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// SanitizeText strips every HTML element from raw and decodes the entities
// the policy escapes, so "<b>R&amp;D</b>" becomes "R&D".
func SanitizeText(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return html.UnescapeString(sanitizer().Sanitize(raw))
}

// SanitizeExport returns a copy of export whose field names, proposal labels
// and answer values are sanitised. The input is left untouched.
func SanitizeExport(export model.Export) model.Export {
	out := export

	if export.Fields != nil {
		out.Fields = make([]model.FieldDefinition, len(export.Fields))
		for i, def := range export.Fields {
			def.Name = SanitizeText(def.Name)
			def.Proposals = sanitizeAll(def.Proposals)
			out.Fields[i] = def
		}
	}

	if export.Submissions == nil {
		return out
	}
	out.Submissions = make([]model.Submission, len(export.Submissions))
	for i, sub := range export.Submissions {
		answers := make([]model.Answer, len(sub.Answers))
		for j, answer := range sub.Answers {
			answer.FieldName = SanitizeText(answer.FieldName)
			answer.Proposals = sanitizeAll(answer.Proposals)
			answer.Value = sanitizePtr(answer.Value)
			answer.Response = sanitizePtr(answer.Response)
			if answer.Responses != nil {
				responses := make([]*string, len(answer.Responses))
				for k, response := range answer.Responses {
					responses[k] = sanitizePtr(response)
				}
				answer.Responses = responses
			}
			answers[j] = answer
		}
		out.Submissions[i] = model.Submission{ID: sub.ID, Answers: answers}
	}
	return out
}

func sanitizeAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = SanitizeText(value)
	}
	return out
}

func sanitizePtr(value *string) *string {
	if value == nil {
		return nil
	}
	return model.StringPtr(SanitizeText(*value))
}
