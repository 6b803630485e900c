// Package docforms turns legal templates with {{placeholder}} tokens into
// sectioned form schemas. The root package wires the default pipeline and the
// built-in renderers; pkg/orchestrator exposes the configurable pipeline.
package docforms
