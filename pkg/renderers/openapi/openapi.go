// Package openapi renders the fill-step contract of a template as an OpenAPI
// 3 document: one POST operation whose request body is the submission schema.
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docforms/pkg/orchestrator"
	"github.com/goliatone/go-docforms/pkg/render"
	"github.com/goliatone/go-docforms/pkg/submission"
)

const (
	defaultVersion     = "1.0.0"
	defaultPathPattern = "/templates/%s/fill"
)

// Option customises the renderer configuration.
type Option func(*Renderer)

// WithVersion sets info.version of the emitted document.
func WithVersion(version string) Option {
	return func(r *Renderer) {
		if v := strings.TrimSpace(version); v != "" {
			r.version = v
		}
	}
}

// WithPathPattern sets the operation path; "%s" is replaced by the template
// id.
func WithPathPattern(pattern string) Option {
	return func(r *Renderer) {
		if p := strings.TrimSpace(pattern); p != "" {
			r.pathPattern = p
		}
	}
}

// Renderer emits OpenAPI documents built with kin-openapi.
type Renderer struct {
	version     string
	pathPattern string
}

// New constructs an OpenAPI renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{version: defaultVersion, pathPattern: defaultPathPattern}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "openapi"
}

func (r *Renderer) ContentType() string {
	return "application/vnd.oai.openapi+json"
}

func (r *Renderer) Render(ctx context.Context, result orchestrator.Result, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := r.Document(render.ApplySubset(result, opts.Subset))
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode: %w", err)
	}
	return append(out, '\n'), nil
}

// Document builds the OpenAPI document for result.
func (r *Renderer) Document(result orchestrator.Result) *openapi3.T {
	templateID := result.Schema.TemplateID
	if templateID == "" {
		templateID = "template"
	}
	schemaName := componentName(templateID) + "Submission"

	schema := submission.Schema(result.Table)
	schema.Title = templateID
	if result.Schema.Fingerprint != "" {
		schema.Extensions = map[string]any{"x-fingerprint": result.Schema.Fingerprint}
	}

	ref := "#/components/schemas/" + schemaName
	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchemaRef(openapi3.NewSchemaRef(ref, schema))

	op := openapi3.NewOperation()
	op.OperationID = "fill-" + templateID
	op.Summary = fmt.Sprintf("Preencher o modelo %s", templateID)
	op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Documento gerado"),
		}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Valores inválidos"),
		}),
	)

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   templateID,
			Version: r.version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(fmt.Sprintf(r.pathPattern, templateID), &openapi3.PathItem{Post: op}),
		),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				schemaName: openapi3.NewSchemaRef("", schema),
			},
		},
	}
}

// componentName turns a template id into a component-safe identifier.
func componentName(id string) string {
	var b strings.Builder
	upper := true
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			if upper {
				b.WriteString(strings.ToUpper(string(r)))
				upper = false
				continue
			}
			b.WriteRune(r)
		default:
			upper = true
		}
	}
	if b.Len() == 0 {
		return "Template"
	}
	return b.String()
}
