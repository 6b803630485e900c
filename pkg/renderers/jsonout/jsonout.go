// Package jsonout renders analysis results as JSON.
package jsonout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-docforms/pkg/orchestrator"
	"github.com/goliatone/go-docforms/pkg/render"
)

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

// Renderer encodes results with encoding/json.
type Renderer struct {
	view render.View
}

// New constructs a JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{view: render.ViewFull}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, result orchestrator.Result, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("jsonout: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload := render.Project(render.ApplySubset(result, opts.Subset), r.view)
	var (
		out []byte
		err error
	)
	if opts.Compact {
		out, err = json.Marshal(payload)
	} else {
		out, err = json.MarshalIndent(payload, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("jsonout: encode: %w", err)
	}
	return append(out, '\n'), nil
}
