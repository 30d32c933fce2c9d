package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formsubmissions/pkg/model"
)

// missing marks an answer slot the submitter left blank.
const missing = "-"

type textRenderer struct{}

// NewText returns the renderer registered as "text". Each submission prints
// its id followed by one indented "field: value" line per answer;
// multiple-choice answers list "proposal=response" pairs.
func NewText() Renderer { return textRenderer{} }

func (textRenderer) Name() string        { return "text" }
func (textRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (textRenderer) Render(ctx context.Context, export model.Export, _ Options) ([]byte, error) {
	var b strings.Builder
	for _, sub := range export.Submissions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "submission %s\n", sub.ID)
		for _, answer := range sub.Answers {
			fmt.Fprintf(&b, "  %s: %s\n", answer.FieldName, formatAnswer(answer))
		}
	}
	if len(export.Warnings) > 0 {
		fmt.Fprintf(&b, "warnings (%d)\n", len(export.Warnings))
		for _, warning := range export.Warnings {
			fmt.Fprintf(&b, "  %s\n", warning.String())
		}
	}
	return []byte(b.String()), nil
}

func formatAnswer(answer model.Answer) string {
	switch answer.Kind {
	case model.FieldKindMultipleChoice:
		pairs := make([]string, len(answer.Proposals))
		for i, proposal := range answer.Proposals {
			var response *string
			if i < len(answer.Responses) {
				response = answer.Responses[i]
			}
			pairs[i] = proposal + "=" + deref(response)
		}
		return strings.Join(pairs, ", ")
	case model.FieldKindSingleChoice:
		return deref(answer.Response)
	default:
		return deref(answer.Value)
	}
}

func deref(value *string) string {
	if value == nil {
		return missing
	}
	return *value
}
