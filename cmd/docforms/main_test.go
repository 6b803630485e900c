package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		cfgFile, outputFormat, logLevel, templateID, onlySections, onlyCategories = "", "", "", "", "", ""
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTemplate(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func TestTableCommand(t *testing.T) {
	path := writeTemplate(t, "peticao.txt", "{{autor_1_nome}} contra {{reu_nome}}\nProcesso {{processo_numero}}\n")

	stdout, _, err := executeRoot(t, "table", path)
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	var report struct {
		TemplateID string `json:"templateId"`
		Fields     []struct {
			Key string `json:"key"`
		} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout)
	}
	if report.TemplateID != "peticao" {
		t.Fatalf("template id = %q", report.TemplateID)
	}
	var keys []string
	for _, f := range report.Fields {
		keys = append(keys, f.Key)
	}
	want := []string{"autor_1_nome", "reu_nome", "processo_numero"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeCommand_ConfigAndSubset(t *testing.T) {
	path := writeTemplate(t, "peticao.txt", "{{autor_1_nome}} {{autor_2_nome}} {{reu_nome}}\n")
	cfg := filepath.Join(t.TempDir(), "docforms.yaml")
	if err := os.WriteFile(cfg, []byte("renderer: yaml\nview: schema\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout, _, err := executeRoot(t, "analyze", path, "--config", cfg, "--only", "person_active*")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(stdout, "person_active_2") {
		t.Fatalf("expected second author section in YAML output:\n%s", stdout)
	}
	if strings.Contains(stdout, "person_passive") {
		t.Fatalf("subset should drop the defendant section:\n%s", stdout)
	}
}

func TestAnalyzeCommand_UnknownRenderer(t *testing.T) {
	path := writeTemplate(t, "peticao.txt", "{{autor_1_nome}}\n")
	if _, _, err := executeRoot(t, "analyze", path, "-o", "html"); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}

func TestWithin(t *testing.T) {
	dir := filepath.Join("srv", "overrides")
	cases := map[string]bool{
		filepath.Join(dir, "peticao.yaml"):         true,
		filepath.Join(dir, "nested", "multa.json"): true,
		filepath.Join("srv", "other.yaml"):         false,
		filepath.Join("srv", "overrides2", "a"):    false,
	}
	for name, want := range cases {
		if got := within(name, dir); got != want {
			t.Fatalf("within(%q) = %v, want %v", name, got, want)
		}
	}
}
