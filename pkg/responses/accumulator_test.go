package responses_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsubmissions/pkg/model"
	"github.com/goliatone/go-formsubmissions/pkg/responses"
)

var (
	textField   = model.FieldDefinition{ID: "10", Name: "Comment", Kind: model.FieldKindText}
	choiceField = model.FieldDefinition{ID: "20", Name: "Pick", Kind: model.FieldKindMultipleChoice, Proposals: []string{"A", "B", "C"}}
	singleField = model.FieldDefinition{ID: "30", Name: "One", Kind: model.FieldKindSingleChoice, Proposals: []string{"Yes", "No"}}
	otherField  = model.FieldDefinition{ID: "40", Name: "Upload", Kind: model.FieldKindUnknown}
)

func TestNew_ShapeFollowsDefinition(t *testing.T) {
	cases := []struct {
		def   model.FieldDefinition
		slots int
	}{
		{def: textField, slots: 0},
		{def: choiceField, slots: 3},
		{def: singleField, slots: 0},
		{def: otherField, slots: 0},
		{def: model.FieldDefinition{ID: "50", Kind: model.FieldKindMultipleChoice}, slots: 0},
		{def: model.FieldDefinition{ID: "60", Kind: model.FieldKind("bogus")}, slots: 0},
	}

	for _, tc := range cases {
		acc := responses.New(tc.def)
		if acc.Slots() != tc.slots {
			t.Errorf("field %s (%s): want %d slots, got %d", tc.def.ID, tc.def.Kind, tc.slots, acc.Slots())
		}
	}
}

func TestText_LastWriteWins(t *testing.T) {
	acc := responses.New(textField)
	if w := acc.Insert(model.NewFragment("10", "first")); w != nil {
		t.Fatalf("unexpected warning: %v", w)
	}
	acc.Insert(model.NewFragment("10", "hello"))

	want := model.Answer{ID: "10", FieldName: "Comment", Kind: model.FieldKindText, Value: model.StringPtr("hello")}
	if diff := cmp.Diff(want, acc.Answer()); diff != "" {
		t.Fatalf("answer mismatch (-want +got):\n%s", diff)
	}
}

func TestText_UnansweredHasNoValue(t *testing.T) {
	answer := responses.New(textField).Answer()
	if answer.Value != nil {
		t.Fatalf("expected unset value, got %q", *answer.Value)
	}
}

func TestMultipleChoice_FillsSlotsInAnyOrder(t *testing.T) {
	acc := responses.New(choiceField)
	acc.Insert(model.NewFragment("20_3", "no"))
	acc.Insert(model.NewFragment("20_1", "yes"))

	want := model.Answer{
		ID:        "20",
		FieldName: "Pick",
		Kind:      model.FieldKindMultipleChoice,
		Proposals: []string{"A", "B", "C"},
		Responses: []*string{model.StringPtr("yes"), nil, model.StringPtr("no")},
	}
	if diff := cmp.Diff(want, acc.Answer()); diff != "" {
		t.Fatalf("answer mismatch (-want +got):\n%s", diff)
	}
}

func TestMultipleChoice_RejectsBadIndexes(t *testing.T) {
	cases := []struct {
		fieldID string
		code    model.WarningCode
	}{
		{fieldID: "20_0", code: model.WarningIndexOutOfRange},
		{fieldID: "20_4", code: model.WarningIndexOutOfRange},
		{fieldID: "20_-1", code: model.WarningIndexOutOfRange},
		{fieldID: "20_x", code: model.WarningInvalidIndex},
		{fieldID: "20_", code: model.WarningInvalidIndex},
		{fieldID: "20", code: model.WarningInvalidIndex},
	}

	for _, tc := range cases {
		t.Run(tc.fieldID, func(t *testing.T) {
			acc := responses.New(choiceField)
			acc.Insert(model.NewFragment("20_2", "kept"))

			w := acc.Insert(model.NewFragment(tc.fieldID, "bad"))
			if w == nil {
				t.Fatalf("expected a warning")
			}
			if w.Code != tc.code {
				t.Fatalf("warning code: want %q, got %q", tc.code, w.Code)
			}
			if w.FieldID != tc.fieldID {
				t.Fatalf("warning should name fragment %q, got %q", tc.fieldID, w.FieldID)
			}

			want := []*string{nil, model.StringPtr("kept"), nil}
			if diff := cmp.Diff(want, acc.Answer().Responses); diff != "" {
				t.Fatalf("slots must be untouched (-want +got):\n%s", diff)
			}
			if acc.Slots() != 3 {
				t.Fatalf("shape changed to %d slots", acc.Slots())
			}
		})
	}
}

func TestMultipleChoice_TrailingSegmentsIgnored(t *testing.T) {
	acc := responses.New(choiceField)
	if w := acc.Insert(model.NewFragment("20_2_other", "x")); w != nil {
		t.Fatalf("unexpected warning: %v", w)
	}
	if got := acc.Answer().Responses[1]; got == nil || *got != "x" {
		t.Fatalf("expected slot 2 to hold x, got %v", got)
	}
}

func TestSingleChoice_Projection(t *testing.T) {
	acc := responses.New(singleField)
	acc.Insert(model.NewFragment("30", "Yes"))

	want := model.Answer{
		ID:        "30",
		FieldName: "One",
		Kind:      model.FieldKindSingleChoice,
		Proposals: []string{"Yes", "No"},
		Response:  model.StringPtr("Yes"),
	}
	if diff := cmp.Diff(want, acc.Answer()); diff != "" {
		t.Fatalf("answer mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknown_BehavesLikeText(t *testing.T) {
	acc := responses.New(otherField)
	acc.Insert(model.NewFragment("40", "file.pdf"))

	answer := acc.Answer()
	if answer.Value == nil || *answer.Value != "file.pdf" {
		t.Fatalf("expected value file.pdf, got %v", answer.Value)
	}
	if answer.Responses != nil || answer.Proposals != nil {
		t.Fatalf("unknown fields project as scalars: %+v", answer)
	}
}

func TestAnswer_IsDetachedFromState(t *testing.T) {
	acc := responses.New(choiceField)
	acc.Insert(model.NewFragment("20_1", "yes"))

	first := acc.Answer()
	first.Proposals[0] = "mutated"
	*first.Responses[0] = "mutated"

	second := acc.Answer()
	if second.Proposals[0] != "A" || *second.Responses[0] != "yes" {
		t.Fatalf("projection leaked internal state: %+v", second)
	}
	if choiceField.Proposals[0] != "A" {
		t.Fatalf("definition proposals were mutated")
	}
}
