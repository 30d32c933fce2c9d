package responses

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formsubmissions/pkg/model"
)

// Accumulator collects the answer fragments of one field within one
// submission. The zero value is not usable; construct with New.
type Accumulator struct {
	def   model.FieldDefinition
	value *string
	slots []*string
}

// New returns an accumulator shaped after def: one slot per proposal for
// multiple-choice fields, a single scalar for every other kind. Unknown kinds
// fall back to scalar storage.
func New(def model.FieldDefinition) *Accumulator {
	acc := &Accumulator{def: def}
	if def.Kind == model.FieldKindMultipleChoice {
		acc.slots = make([]*string, len(def.Proposals))
	}
	return acc
}

// Definition returns the field definition the accumulator was built from.
func (a *Accumulator) Definition() model.FieldDefinition {
	return a.def
}

// Slots reports the number of proposal slots; zero for scalar accumulators.
func (a *Accumulator) Slots() int {
	return len(a.slots)
}

// Insert folds a fragment into the accumulator. Scalar kinds keep the last
// value written. Multiple-choice fields write into the slot addressed by the
// fragment's proposal index; a missing, malformed or out-of-range index
// leaves every slot untouched and is reported through the returned warning.
// A nil return means the fragment was accepted.
func (a *Accumulator) Insert(fragment model.Fragment) *model.Warning {
	switch a.def.Kind {
	case model.FieldKindMultipleChoice:
		return a.insertSlot(fragment)
	default:
		if value, ok := fragment.ScalarValue(); ok {
			a.value = &value
		}
		return nil
	}
}

func (a *Accumulator) insertSlot(fragment model.Fragment) *model.Warning {
	fieldID := fragment.FieldID.String()
	raw, ok := proposalIndex(fieldID, a.def.ID)
	if !ok {
		return &model.Warning{
			Code:    model.WarningInvalidIndex,
			FieldID: fieldID,
			Message: "field " + a.def.ID + ": fragment " + strconv.Quote(fieldID) + " carries no proposal index",
		}
	}

	index, err := strconv.Atoi(raw)
	if err != nil {
		return &model.Warning{
			Code:    model.WarningInvalidIndex,
			FieldID: fieldID,
			Message: "field " + a.def.ID + ": proposal index " + strconv.Quote(raw) + " is not a number",
		}
	}
	if index < 1 || index > len(a.slots) {
		return &model.Warning{
			Code:    model.WarningIndexOutOfRange,
			FieldID: fieldID,
			Message: "field " + a.def.ID + ": proposal index " + raw + " outside 1.." + strconv.Itoa(len(a.slots)),
		}
	}

	if value, ok := fragment.SlotValue(); ok {
		a.slots[index-1] = &value
	}
	return nil
}

// proposalIndex extracts the segment following the field id's separator from
// a compound fragment id such as "20_3".
func proposalIndex(fragmentID, fieldID string) (string, bool) {
	rest, found := strings.CutPrefix(fragmentID, fieldID+"_")
	if !found {
		_, rest, found = strings.Cut(fragmentID, "_")
		if !found {
			return "", false
		}
	}
	rest, _, _ = strings.Cut(rest, "_")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	return rest, true
}

// Answer projects the accumulated state. Slices are copied so the projection
// stays valid if the accumulator is reused.
func (a *Accumulator) Answer() model.Answer {
	answer := model.Answer{
		ID:        a.def.ID,
		FieldName: a.def.Name,
		Kind:      a.def.Kind,
	}

	switch a.def.Kind {
	case model.FieldKindMultipleChoice:
		answer.Proposals = cloneStrings(a.def.Proposals)
		answer.Responses = make([]*string, len(a.slots))
		for i, slot := range a.slots {
			if slot != nil {
				answer.Responses[i] = model.StringPtr(*slot)
			}
		}
	case model.FieldKindSingleChoice:
		answer.Proposals = cloneStrings(a.def.Proposals)
		answer.Response = copyPtr(a.value)
	default:
		answer.Value = copyPtr(a.value)
	}
	return answer
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return model.StringPtr(*s)
}
