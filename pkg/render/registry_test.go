package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docforms/pkg/orchestrator"
	"github.com/goliatone/go-docforms/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, orchestrator.Result, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "yaml"})
	registry.MustRegister(stubRenderer{name: "json"})

	if err := registry.Register(stubRenderer{name: "json"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected error for unnamed renderer")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}

	if diff := cmp.Diff([]string{"json", "yaml"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("yaml") || registry.Has("html") {
		t.Fatalf("has reported the wrong renderers")
	}
	if _, err := registry.Get("html"); err == nil {
		t.Fatalf("expected not found error")
	}
	out, err := registry.MustGet("json").Render(context.Background(), orchestrator.Result{}, render.RenderOptions{})
	if err != nil || string(out) != "json" {
		t.Fatalf("unexpected render output %q (%v)", out, err)
	}
}

func TestRegistry_AliasesAndResolve(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "yaml"})
	registry.MustRegister(stubRenderer{name: "JSON"})
	for alias, name := range render.DefaultAliases() {
		if name == "openapi" {
			if err := registry.Alias(alias, name); !errors.Is(err, render.ErrNotFound) {
				t.Fatalf("aliasing a missing renderer should fail with ErrNotFound, got %v", err)
			}
			continue
		}
		if err := registry.Alias(alias, name); err != nil {
			t.Fatalf("alias %s: %v", alias, err)
		}
	}

	if err := registry.Alias("json", "yaml"); err == nil {
		t.Fatalf("expected error when an alias shadows a renderer")
	}
	if err := registry.Register(stubRenderer{name: "yml"}); err == nil {
		t.Fatalf("expected error when a renderer name is taken by an alias")
	}

	for input, want := range map[string]string{"YML": "yaml", " yaml ": "yaml", "json": "JSON"} {
		renderer, err := registry.Get(input)
		if err != nil {
			t.Fatalf("get %q: %v", input, err)
		}
		if renderer.Name() != want {
			t.Fatalf("get %q resolved to %q, want %q", input, renderer.Name(), want)
		}
	}
	if diff := cmp.Diff([]string{"json", "yaml"}, registry.List()); diff != "" {
		t.Fatalf("aliases should not be listed (-want +got):\n%s", diff)
	}

	renderer, err := registry.Resolve("", "yml")
	if err != nil || renderer.Name() != "yaml" {
		t.Fatalf("blank name should use the fallback, got %v (%v)", renderer, err)
	}
	if _, err := registry.Resolve("html", "json"); !errors.Is(err, render.ErrNotFound) || !strings.Contains(err.Error(), "available: json, yaml") {
		t.Fatalf("expected ErrNotFound listing the renderers, got %v", err)
	}
}
