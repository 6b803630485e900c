package docforms_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	docforms "github.com/goliatone/go-docforms"
	"github.com/goliatone/go-docforms/pkg/orchestrator"
	"github.com/goliatone/go-docforms/pkg/testsupport"
)

func TestAnalyzeFile_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recurso-multa.txt")
	content := "Ilmo. Sr. {{orgao_transito_1_nome}}\n{{cliente_nome}}, placa {{placa_veiculo}}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	result, err := docforms.AnalyzeFile(testsupport.Context(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if result.Schema.TemplateID != "recurso-multa" {
		t.Fatalf("template id should come from the file name, got %q", result.Schema.TemplateID)
	}
	want := []string{"client", "process", "authority_1"}
	if diff := cmp.Diff(want, testsupport.SectionNames(result.Schema)); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_GoogleDocsFixture(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("pkg", "document", "testdata", "peticao-gdocs.json"))

	result, err := docforms.Analyze(testsupport.Context(), doc, "peticao-gdocs")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	sections := make(map[string]bool)
	for _, name := range testsupport.SectionNames(result.Schema) {
		sections[name] = true
	}
	for _, want := range []string{"person_active_1", "process"} {
		if !sections[want] {
			t.Fatalf("expected section %q, got %v", want, testsupport.SectionNames(result.Schema))
		}
	}
	if diff := testsupport.CompareGolden(result.Keys, tableKeys(result)); diff != "" {
		t.Fatalf("table should cover every extracted key (-keys +table):\n%s", diff)
	}
}

func tableKeys(result docforms.Result) []string {
	seen := make(map[string]bool, len(result.Table))
	for _, spec := range result.Table {
		seen[spec.Key] = true
	}
	out := make([]string, 0, len(result.Keys))
	for _, key := range result.Keys {
		if seen[key] {
			out = append(out, key)
		}
	}
	return out
}

func TestAnalyze_WithoutTemplateID(t *testing.T) {
	doc := testsupport.TextDocument("", "{{autor_1_nome}} contra {{reu_nome}}")

	result, err := docforms.Analyze(testsupport.Context(), doc, "")
	if err != nil {
		t.Fatalf("Analyze without a template id: %v", err)
	}
	if diff := cmp.Diff([]string{"person_active_1", "person_passive"}, testsupport.SectionNames(result.Schema)); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}

	cache := orchestrator.NewMemoryCache()
	if _, err := docforms.Analyze(testsupport.Context(), doc, "contestacao", orchestrator.WithCache(cache)); err != nil {
		t.Fatalf("Analyze with cache: %v", err)
	}
	cached, err := docforms.Analyze(testsupport.Context(), doc, "contestacao", orchestrator.WithCache(cache))
	if err != nil {
		t.Fatalf("Analyze with cache: %v", err)
	}
	if !cached.Cached {
		t.Fatalf("an explicit cache option should enable caching")
	}
}

func TestAnalyzeFile_Missing(t *testing.T) {
	if _, err := docforms.AnalyzeFile(testsupport.Context(), filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRender(t *testing.T) {
	doc := testsupport.TextDocument("peticao", "{{autor_1_nome}} {{reu_nome}}")
	result, err := docforms.Analyze(testsupport.Context(), doc, "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	out, err := docforms.Render(testsupport.Context(), result, "json", docforms.RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if _, ok := payload["schema"]; !ok {
		t.Fatalf("expected schema in full view, got keys %v", payload)
	}

	_, err = docforms.Render(testsupport.Context(), result, "html", docforms.RenderOptions{})
	if err == nil || !strings.Contains(err.Error(), "html") {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
}

func TestNewRegistry(t *testing.T) {
	got := docforms.NewRegistry().List()
	want := []string{"json", "openapi", "yaml"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("registry mismatch (-want +got):\n%s", diff)
	}
}
