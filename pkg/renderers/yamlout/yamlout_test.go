package yamlout_test

import (
	"context"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docforms/pkg/orchestrator"
	"github.com/goliatone/go-docforms/pkg/render"
	"github.com/goliatone/go-docforms/pkg/renderers/yamlout"
	"github.com/goliatone/go-docforms/pkg/testsupport"
)

func TestRender_TableView(t *testing.T) {
	result, err := orchestrator.New(orchestrator.WithCache(nil)).Analyze(testsupport.Context(), orchestrator.Request{
		Document: testsupport.TextDocument("procuracao", "{{cliente_nome}}, {{cliente_estado_civil}}", "{{cliente_nome}}"),
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	out, err := yamlout.New(yamlout.WithView(render.ViewTable), yamlout.WithIndent(4)).Render(context.Background(), result, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var report render.TableReport
	if err := yaml.Unmarshal(out, &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if report.TemplateID != "procuracao" || len(report.Fields) != 2 {
		t.Fatalf("unexpected report: %#v", report)
	}
	if report.Fields[1].Key != "cliente_estado_civil" || report.Fields[1].Type != "select" {
		t.Fatalf("expected marital status select, got %#v", report.Fields[1])
	}
	if report.Occurrences[0].Count != 2 {
		t.Fatalf("expected cliente_nome twice, got %#v", report.Occurrences[0])
	}
}
