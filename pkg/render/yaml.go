package render

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formsubmissions/pkg/model"
)

type yamlRenderer struct{}

// NewYAML returns the renderer registered as "yaml".
func NewYAML() Renderer { return yamlRenderer{} }

func (yamlRenderer) Name() string        { return "yaml" }
func (yamlRenderer) ContentType() string { return "application/yaml" }

func (yamlRenderer) Render(_ context.Context, export model.Export, _ Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(export); err != nil {
		return nil, fmt.Errorf("render: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("render: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
