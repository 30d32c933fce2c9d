package mapper

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formsubmissions/pkg/model"
	"github.com/goliatone/go-formsubmissions/pkg/responses"
)

// Result is the outcome of mapping one submission.
type Result struct {
	Submission model.Submission
	Warnings   model.Warnings
}

// BatchResult is the outcome of mapping several submissions. Submissions keep
// the input order; Warnings are grouped by submission in the same order.
type BatchResult struct {
	Submissions []model.Submission
	Warnings    model.Warnings
}

// Map folds the fragments of raw into fresh accumulators built from defs.
// Answers follow the order of defs and include unanswered fields.
func Map(defs []model.FieldDefinition, raw model.RawSubmission) Result {
	submissionID := raw.ID.String()

	accumulators := make([]*responses.Accumulator, len(defs))
	for i, def := range defs {
		accumulators[i] = responses.New(def)
	}

	var warnings model.Warnings
	for _, fragment := range raw.Fragments() {
		fieldID := fragment.FieldID.String()
		idx := Match(defs, fieldID)
		if idx < 0 {
			warnings = append(warnings, model.Warning{
				Code:         model.WarningUnmatchedFragment,
				SubmissionID: submissionID,
				FieldID:      fieldID,
				Message:      fmt.Sprintf("field with id %s not found", fieldID),
			})
			continue
		}
		if w := accumulators[idx].Insert(fragment); w != nil {
			w.SubmissionID = submissionID
			warnings = append(warnings, *w)
		}
	}

	answers := make([]model.Answer, len(accumulators))
	for i, acc := range accumulators {
		answers[i] = acc.Answer()
	}

	return Result{
		Submission: model.Submission{ID: submissionID, Answers: answers},
		Warnings:   warnings,
	}
}

// Match returns the index of the definition a fragment id belongs to, or -1.
// An exact id match wins over an "<id>_" prefix, which wins over plain
// containment; ties resolve to the first definition in form order.
func Match(defs []model.FieldDefinition, fragmentID string) int {
	if fragmentID == "" {
		return -1
	}
	for i, def := range defs {
		if def.ID != "" && def.ID == fragmentID {
			return i
		}
	}
	for i, def := range defs {
		if def.ID != "" && strings.HasPrefix(fragmentID, def.ID+"_") {
			return i
		}
	}
	for i, def := range defs {
		if def.ID != "" && strings.Contains(fragmentID, def.ID) {
			return i
		}
	}
	return -1
}

// MapAll maps every submission in raws with at most limit concurrent workers
// (no bound when limit <= 0). It only fails when ctx is cancelled.
func MapAll(ctx context.Context, defs []model.FieldDefinition, raws []model.RawSubmission, limit int) (BatchResult, error) {
	results := make([]Result, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := range raws {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Map(defs, raws[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, fmt.Errorf("mapper: map submissions: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return BatchResult{}, fmt.Errorf("mapper: map submissions: %w", err)
	}

	out := BatchResult{Submissions: make([]model.Submission, len(results))}
	for i, res := range results {
		out.Submissions[i] = res.Submission
		out.Warnings = append(out.Warnings, res.Warnings...)
	}
	return out, nil
}
