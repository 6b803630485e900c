package render

import (
	"context"

	"github.com/goliatone/go-docforms/pkg/orchestrator"
)

// Renderer converts an analysis result into a byte representation (JSON,
// YAML, an OpenAPI document, an interactive fill session, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, result orchestrator.Result, options RenderOptions) ([]byte, error)
}
