package docforms

import (
	"context"
	"fmt"

	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/orchestrator"
	"github.com/goliatone/go-docforms/pkg/render"
	"github.com/goliatone/go-docforms/pkg/renderers/jsonout"
	"github.com/goliatone/go-docforms/pkg/renderers/openapi"
	"github.com/goliatone/go-docforms/pkg/renderers/yamlout"
)

// Result aliases the orchestrator analysis result.
type Result = orchestrator.Result

// RenderOptions describes per-request values and section subsets passed to
// renderers.
type RenderOptions = render.RenderOptions

// FieldSubset aliases render.FieldSubset for callers rendering only some
// sections.
type FieldSubset = render.FieldSubset

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Analyze extracts, classifies and groups the placeholders of doc. It is the
// simplest entry point for callers analysing a single template. Caching is
// off unless options enable it with orchestrator.WithCache.
func Analyze(ctx context.Context, doc document.Document, templateID string, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithCache(nil)}, options...)...)
	return gen.Analyze(ctx, orchestrator.Request{
		TemplateID: templateID,
		Document:   doc,
	})
}

// AnalyzeFile reads a plain-text template or a Google Docs JSON export and
// analyses it. The file name without extension is used as template id.
func AnalyzeFile(ctx context.Context, path string, options ...orchestrator.Option) (Result, error) {
	doc, err := document.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Analyze(ctx, doc, doc.ID, options...)
}

// NewRegistry returns a registry holding the non-interactive renderers.
func NewRegistry() *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(jsonout.New())
	registry.MustRegister(yamlout.New())
	registry.MustRegister(openapi.New())
	registerAliases(registry)
	return registry
}

func registerAliases(registry *render.Registry) {
	for alias, name := range render.DefaultAliases() {
		if err := registry.Alias(alias, name); err != nil {
			panic(err)
		}
	}
}

// Render encodes result with the named built-in renderer. A blank name
// selects JSON.
func Render(ctx context.Context, result Result, rendererName string, opts RenderOptions) ([]byte, error) {
	renderer, err := NewRegistry().Resolve(rendererName, "json")
	if err != nil {
		return nil, fmt.Errorf("docforms: %w", err)
	}
	return renderer.Render(ctx, result, opts)
}
