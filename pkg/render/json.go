package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formsubmissions/pkg/model"
)

type jsonRenderer struct{}

// NewJSON returns the renderer registered as "json".
func NewJSON() Renderer { return jsonRenderer{} }

func (jsonRenderer) Name() string        { return "json" }
func (jsonRenderer) ContentType() string { return "application/json" }

func (jsonRenderer) Render(_ context.Context, export model.Export, _ Options) ([]byte, error) {
	out, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: encode json: %w", err)
	}
	return append(out, '\n'), nil
}
