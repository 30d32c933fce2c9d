package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formsubmissions/pkg/model"
)

// TemplateRenderer renders the export through a pongo2 template. The
// template comes from Options.Template and is either inline source or a path
// to a template file; files are parsed once and cached.
//
// The context exposes the export's JSON keys (runId, formId, fetchedAt,
// fields, submissions, warnings). Every answer also carries a "display" key
// holding the same one-line rendering the text renderer prints.
type TemplateRenderer struct {
	mu        sync.RWMutex
	templates map[string]*pongo2.Template
}

var registerFiltersOnce sync.Once

// NewTemplate returns the renderer registered as "template".
func NewTemplate() *TemplateRenderer {
	registerFiltersOnce.Do(registerDefaultFilters)
	return &TemplateRenderer{templates: make(map[string]*pongo2.Template)}
}

func (*TemplateRenderer) Name() string        { return "template" }
func (*TemplateRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (t *TemplateRenderer) Render(ctx context.Context, export model.Export, options Options) ([]byte, error) {
	source := strings.TrimSpace(options.Template)
	if source == "" {
		return nil, ErrTemplateRequired
	}

	var (
		tmpl *pongo2.Template
		err  error
	)
	if isTemplateContent(source) {
		tmpl, err = pongo2.FromString(options.Template)
		if err != nil {
			return nil, fmt.Errorf("render: parse template string: %w", err)
		}
	} else {
		tmpl, err = t.load(source)
		if err != nil {
			return nil, err
		}
	}

	viewContext, err := exportContext(export)
	if err != nil {
		return nil, fmt.Errorf("render: convert export: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return nil, fmt.Errorf("render: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func (t *TemplateRenderer) load(path string) (*pongo2.Template, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("render: resolve template %q: %w", path, err)
	}

	t.mu.RLock()
	if tmpl, ok := t.templates[abs]; ok {
		t.mu.RUnlock()
		return tmpl, nil
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	if tmpl, ok := t.templates[abs]; ok {
		return tmpl, nil
	}

	// Includes and extends resolve relative to the template's directory.
	loader, err := pongo2.NewLocalFileSystemLoader(filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("render: create template loader: %w", err)
	}
	set := pongo2.NewSet("formsubmissions:"+abs, loader)
	tmpl, err := set.FromFile(filepath.Base(abs))
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", path, err)
	}
	t.templates[abs] = tmpl
	return tmpl, nil
}

func isTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

func exportContext(export model.Export) (pongo2.Context, error) {
	raw, err := json.Marshal(export)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	subs, _ := out["submissions"].([]any)
	for i, entry := range subs {
		sub, ok := entry.(map[string]any)
		if !ok || i >= len(export.Submissions) {
			continue
		}
		answers, _ := sub["answers"].([]any)
		for j, item := range answers {
			answer, ok := item.(map[string]any)
			if !ok || j >= len(export.Submissions[i].Answers) {
				continue
			}
			answer["display"] = formatAnswer(export.Submissions[i].Answers[j])
		}
	}
	return pongo2.Context(out), nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("orblank") {
		_ = pongo2.RegisterFilter("orblank", filterOrBlank)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterOrBlank renders nil values as the blank-slot marker.
func filterOrBlank(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(missing), nil
	}
	return in, nil
}
