package formsubmissions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formsubmissions/pkg/fields"
	"github.com/goliatone/go-formsubmissions/pkg/mapper"
	"github.com/goliatone/go-formsubmissions/pkg/model"
)

// DefaultConcurrency bounds how many submissions are mapped at once when no
// WithConcurrency option is given.
const DefaultConcurrency = 4

// ErrMissingFormID is returned by Harvest when formID is blank.
var ErrMissingFormID = errors.New("formsubmissions: form id is required")

// Source provides the raw payloads of one form. *client.Client satisfies it.
type Source interface {
	Fields(ctx context.Context, formID string) ([]model.RawField, error)
	Submissions(ctx context.Context, formID string) ([]model.RawSubmission, error)
}

// Option customises the harvester configuration.
type Option func(*Harvester)

// WithConcurrency bounds the mapping workers. Values below one mean unbounded.
func WithConcurrency(n int) Option {
	return func(h *Harvester) {
		h.concurrency = n
	}
}

// WithLogger routes warnings and progress to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harvester) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithClock overrides the time source used for Export.FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(h *Harvester) {
		if now != nil {
			h.now = now
		}
	}
}

// WithRunID overrides the generator used for Export.RunID.
func WithRunID(next func() string) Option {
	return func(h *Harvester) {
		if next != nil {
			h.runID = next
		}
	}
}

// Harvester fetches a form's field definitions and submissions from a Source
// and normalises them into an Export. Mapping anomalies never fail a harvest;
// they are collected as warnings and logged.
type Harvester struct {
	source      Source
	concurrency int
	logger      *slog.Logger
	now         func() time.Time
	runID       func() string
}

// New constructs a Harvester reading from source.
func New(source Source, options ...Option) *Harvester {
	h := &Harvester{
		source:      source,
		concurrency: DefaultConcurrency,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
		runID:       uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

// Harvest runs the full pipeline for formID. Only transport failures and
// context cancellation are returned as errors.
func (h *Harvester) Harvest(ctx context.Context, formID string) (model.Export, error) {
	if h == nil || h.source == nil {
		return model.Export{}, errors.New("formsubmissions: source is required")
	}
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return model.Export{}, ErrMissingFormID
	}

	runID := h.runID()
	logger := h.logger.With(slog.String("run_id", runID), slog.String("form_id", formID))
	started := h.now()

	rawFields, err := h.source.Fields(ctx, formID)
	if err != nil {
		return model.Export{}, fmt.Errorf("formsubmissions: fetch fields: %w", err)
	}
	defs := fields.CreateAll(rawFields)
	logger.Debug("fields classified", slog.Int("fields", len(defs.Definitions)))

	rawSubs, err := h.source.Submissions(ctx, formID)
	if err != nil {
		return model.Export{}, fmt.Errorf("formsubmissions: fetch submissions: %w", err)
	}

	batch, err := mapper.MapAll(ctx, defs.Definitions, rawSubs, h.concurrency)
	if err != nil {
		return model.Export{}, err
	}

	warnings := make([]model.Warning, 0, len(defs.Warnings)+len(batch.Warnings))
	warnings = append(warnings, defs.Warnings...)
	warnings = append(warnings, batch.Warnings...)
	for _, warning := range warnings {
		logger.Warn(warning.Message,
			slog.String("code", string(warning.Code)),
			slog.String("submission_id", warning.SubmissionID),
			slog.String("field_id", warning.FieldID),
		)
	}

	logger.Info("harvest complete",
		slog.Int("submissions", len(batch.Submissions)),
		slog.Int("warnings", len(warnings)),
		slog.Duration("elapsed", h.now().Sub(started)),
	)

	export := model.Export{
		RunID:       runID,
		FormID:      formID,
		FetchedAt:   started,
		Fields:      defs.Definitions,
		Submissions: batch.Submissions,
	}
	if len(warnings) > 0 {
		export.Warnings = warnings
	}
	return export, nil
}
