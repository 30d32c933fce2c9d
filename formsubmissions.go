package formsubmissions

import (
	"context"

	"github.com/goliatone/go-formsubmissions/pkg/render"
)

// RenderOptions aliases render.Options for callers of Export.
type RenderOptions = render.Options

// Export harvests formID from source and renders the result with the named
// built-in renderer. It is the simplest entry point for callers that just
// want formatted output.
func Export(ctx context.Context, source Source, formID, rendererName string, renderOptions RenderOptions, options ...Option) ([]byte, error) {
	export, err := New(source, options...).Harvest(ctx, formID)
	if err != nil {
		return nil, err
	}
	return render.Default().Render(ctx, rendererName, export, renderOptions)
}
