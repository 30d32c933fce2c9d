package fields

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formsubmissions/pkg/model"
)

// Numeric classifier codes emitted by the upstream service.
const (
	TypeCodeText           = "1"
	TypeCodeMultipleChoice = "2"
)

// Result carries a classified definition and any warnings raised while
// building it.
type Result struct {
	Definition model.FieldDefinition
	Warnings   model.Warnings
}

// ListResult carries the definitions of a whole form, in form order.
type ListResult struct {
	Definitions []model.FieldDefinition
	Warnings    model.Warnings
}

// Create classifies a single raw field. Code 1 yields a text field, code 2 a
// multiple-choice field whose proposals are split from Values. String aliases
// (text, qcm, qcu and the kind names themselves) are honoured; anything else
// degrades to FieldKindUnknown with a warning.
func Create(raw model.RawField) Result {
	code := strings.TrimSpace(raw.Type.String())
	def := model.FieldDefinition{
		ID:       strings.TrimSpace(raw.ID.String()),
		Name:     raw.Name.String(),
		Kind:     classify(code),
		TypeCode: code,
	}

	var warnings model.Warnings
	if def.Kind == model.FieldKindUnknown {
		warnings.Add(model.WarningUnsupportedFieldType, def.ID,
			"type %q not supported, field %q with id %s", code, def.Name, def.ID)
	}
	if def.Kind.HasProposals() {
		def.Proposals = SplitProposals(raw.Values.String())
	}

	return Result{Definition: def, Warnings: warnings}
}

// CreateAll classifies every raw field, preserving order.
func CreateAll(raws []model.RawField) ListResult {
	out := ListResult{
		Definitions: make([]model.FieldDefinition, 0, len(raws)),
	}
	for _, raw := range raws {
		res := Create(raw)
		out.Definitions = append(out.Definitions, res.Definition)
		out.Warnings = append(out.Warnings, res.Warnings...)
	}
	return out
}

// SplitProposals splits a `||` joined string into its ordered labels. Empty
// input yields no proposals; empty labels between separators are kept so that
// positional indexes stay aligned with the upstream form.
func SplitProposals(values string) []string {
	if values == "" {
		return nil
	}
	return strings.Split(values, model.ProposalSeparator)
}

func classify(code string) model.FieldKind {
	switch strings.ToLower(normalizeCode(code)) {
	case TypeCodeText, "text":
		return model.FieldKindText
	case TypeCodeMultipleChoice, "qcm", string(model.FieldKindMultipleChoice):
		return model.FieldKindMultipleChoice
	case "qcu", string(model.FieldKindSingleChoice):
		return model.FieldKindSingleChoice
	default:
		return model.FieldKindUnknown
	}
}

// normalizeCode rewrites integral numeric spellings ("1.0", "2e0") to their
// plain integer form so they classify like "1" and "2".
func normalizeCode(code string) string {
	f, err := strconv.ParseFloat(code, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return code
	}
	return strconv.FormatInt(int64(f), 10)
}
