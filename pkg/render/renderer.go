package render

import (
	"context"

	"github.com/goliatone/go-formsubmissions/pkg/model"
)

// Renderer converts a harvested export into a byte representation (JSON,
// YAML, plain text or a user template).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, export model.Export, options Options) ([]byte, error)
}

// Options describe per-call settings shared by every renderer.
type Options struct {
	// Sanitize strips markup from answer values and proposal labels before
	// rendering.
	Sanitize bool
	// Template is a template file path or inline template source. Only the
	// template renderer reads it.
	Template string
}
