package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docforms/pkg/orchestrator"
	"github.com/goliatone/go-docforms/pkg/render"
	"github.com/goliatone/go-docforms/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	defaults     []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.defaults = append(s.defaults, cfg.Default)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func analyse(t *testing.T) orchestrator.Result {
	t.Helper()
	orch := orchestrator.New(orchestrator.WithCache(nil))
	result, err := orch.Analyze(testsupport.Context(), orchestrator.Request{
		Document: testsupport.TextDocument("multa",
			"{{cliente_nome}} <{{cliente_email}}>",
			"{{autor_1_sexo}} {{autor_1_complemento}}",
			"{{autor_1_observacoes}}",
		),
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return result
}

func TestRender_CollectsReplacementMap(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Maria", "maria", "maria@example.com", ""},
		selectIdx: []int{0},
		textAreas: []string{"Multa indevida"},
		confirm:   []bool{true},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := renderer.Render(context.Background(), analyse(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]string{
		"{{cliente_nome}}":        "Maria",
		"{{cliente_email}}":       "maria@example.com",
		"{{autor_1_sexo}}":        "Feminino",
		"{{autor_1_observacoes}}": "Multa indevida",
		"{{autor_1_complemento}}": "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("replacement map mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{"== Dados do Cliente", "! Cliente Email *", "== Autor 1", "-- Dados", "-- Endereço"}
	if len(driver.infoMessages) != len(wantInfo) {
		t.Fatalf("unexpected info messages: %q", driver.infoMessages)
	}
	for i, prefix := range wantInfo {
		if !strings.HasPrefix(driver.infoMessages[i], prefix) {
			t.Fatalf("info %d: expected prefix %q, got %q", i, prefix, driver.infoMessages[i])
		}
	}
}

func TestRender_PrefillAndPrettyOutput(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Maria", "maria@example.com", "Apto 3"},
		selectIdx: []int{1},
		textAreas: []string{""},
	}
	renderer, err := New(WithPromptDriver(driver), WithConfirm(false), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if renderer.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}

	out, err := renderer.Render(context.Background(), analyse(t), render.RenderOptions{
		Values: map[string]any{"cliente_nome": "Maria", "cliente_cpf": "000"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if driver.defaults[0] != "Maria" {
		t.Fatalf("prefilled value should be offered as default, got %q", driver.defaults[0])
	}
	if !strings.Contains(string(out), "{{autor_1_sexo}}=Masculino\n") {
		t.Fatalf("unexpected pretty output:\n%s", out)
	}
}

func TestRender_AbortAndAttempts(t *testing.T) {
	declined := &stubDriver{
		inputs:    []string{"Maria", "maria@example.com", ""},
		selectIdx: []int{0},
		textAreas: []string{""},
		confirm:   []bool{false},
	}
	renderer, _ := New(WithPromptDriver(declined))
	if _, err := renderer.Render(context.Background(), analyse(t), render.RenderOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	stubborn := &stubDriver{inputs: []string{"", "", ""}}
	renderer, _ = New(WithPromptDriver(stubborn), WithMaxAttempts(2))
	if _, err := renderer.Render(context.Background(), analyse(t), render.RenderOptions{}); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}
