// Package yamlout renders analysis results as YAML.
package yamlout

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docforms/pkg/orchestrator"
	"github.com/goliatone/go-docforms/pkg/render"
)

const defaultIndent = 2

// Option customises the renderer configuration.
type Option func(*Renderer)

// WithView selects the projection to emit. Defaults to render.ViewFull.
func WithView(view render.View) Option {
	return func(r *Renderer) {
		if view != "" {
			r.view = view
		}
	}
}

// WithIndent sets the number of spaces per nesting level.
func WithIndent(spaces int) Option {
	return func(r *Renderer) {
		if spaces > 0 {
			r.indent = spaces
		}
	}
}

// Renderer encodes results with yaml.v3.
type Renderer struct {
	view   render.View
	indent int
}

// New constructs a YAML renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{view: render.ViewFull, indent: defaultIndent}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "yaml"
}

func (r *Renderer) ContentType() string {
	return "application/yaml"
}

func (r *Renderer) Render(ctx context.Context, result orchestrator.Result, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("yamlout: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(r.indent)
	if err := enc.Encode(render.Project(render.ApplySubset(result, opts.Subset), r.view)); err != nil {
		return nil, fmt.Errorf("yamlout: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yamlout: encode: %w", err)
	}
	return buf.Bytes(), nil
}
