package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-docforms/pkg/model"
	"github.com/goliatone/go-docforms/pkg/orchestrator"
	"github.com/goliatone/go-docforms/pkg/render"
	"github.com/goliatone/go-docforms/pkg/submission"
)

const defaultMaxAttempts = 5

// Renderer implements render.Renderer as an interactive fill session. It walks
// the schema section by section, prompts for every field and returns the
// placeholder replacement map.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	confirm           bool
	maxAttempts       int
}

// New constructs a TUI renderer with defaults (survey driver, JSON output,
// final confirmation).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		confirm:      true,
		maxAttempts:  defaultMaxAttempts,
		theme: Theme{
			SectionPrefix:    "==",
			SubsectionPrefix: "--",
			ErrorPrefix:      "!",
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field of result and serializes the replacement
// map. Values in opts.Values are offered as defaults.
func (r *Renderer) Render(ctx context.Context, result orchestrator.Result, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	result = render.ApplySubset(result, opts.Subset)
	sectionOf := make(map[string]model.FieldSpec, len(result.Table))
	for _, spec := range result.Table {
		sectionOf[spec.Key] = spec
	}

	values := cloneValues(opts.Values)
	for _, section := range result.Schema.Sections {
		if err := r.promptSection(ctx, section, r.theme.SectionPrefix, sectionOf, values); err != nil {
			return nil, err
		}
	}

	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	values = pick(values, result.Table)
	if issues := submission.Validate(ctx, result.Table, values); len(issues) > 0 {
		for _, issue := range issues {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+" "+issue.String())
		}
		return nil, fmt.Errorf("tui: %d invalid value(s)", len(issues))
	}

	if r.confirm {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Gerar documento com %d campo(s)?", len(result.Table)),
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	return r.serialize(submission.ReplacementMap(result.Table, values))
}

func (r *Renderer) promptSection(ctx context.Context, section model.FormSection, prefix string, specs map[string]model.FieldSpec, values map[string]any) error {
	if section.Title != "" {
		if err := r.driver.Info(ctx, strings.TrimSpace(prefix+" "+section.Title)); err != nil {
			return err
		}
	}
	for _, field := range section.Fields {
		spec, ok := specs[field.Key]
		if !ok {
			continue
		}
		if err := r.promptField(ctx, spec, values); err != nil {
			return err
		}
	}
	for _, sub := range section.Subsections {
		if err := r.promptSection(ctx, sub, r.theme.SubsectionPrefix, specs, values); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, spec model.FieldSpec, values map[string]any) error {
	label := displayLabel(spec)
	defaultVal := defaultStringValue(values, spec.Key)

	for attempt := 1; ; attempt++ {
		var (
			response string
			err      error
		)
		switch spec.Type {
		case model.FieldTypeSelect:
			response, err = r.promptSelect(ctx, spec, label, defaultVal)
		case model.FieldTypeTextarea:
			response, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: label,
				Default: defaultVal,
				Help:    spec.Key,
			})
		default:
			response, err = r.driver.Input(ctx, InputConfig{
				Message: label,
				Default: defaultVal,
				Help:    spec.Key,
			})
		}
		if err != nil {
			return err
		}

		issues := submission.Validate(ctx, []model.FieldSpec{spec}, map[string]any{spec.Key: response})
		if len(issues) == 0 {
			values[spec.Key] = response
			return nil
		}

		_ = r.driver.Info(ctx, fmt.Sprintf("%s %s: %s", r.theme.ErrorPrefix, label, issues[0].Message))
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, spec.Key)
		}
		defaultVal = response
	}
}

func (r *Renderer) promptSelect(ctx context.Context, spec model.FieldSpec, label, defaultVal string) (string, error) {
	options := spec.Options
	if !spec.Required {
		options = append([]string{""}, options...)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      options,
		DefaultIndex: indexOf(options, defaultVal),
		Help:         spec.Key,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", nil
	}
	return options[idx], nil
}

func (r *Renderer) serialize(values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.MarshalIndent(values, "", "  ")
	}
}

func displayLabel(spec model.FieldSpec) string {
	label := spec.Label
	if label == "" {
		label = spec.Key
	}
	if spec.Required {
		return label + " *"
	}
	return label
}

func defaultStringValue(values map[string]any, key string) string {
	value, ok := values[key]
	if !ok || value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// pick keeps the values of the table's keys; prefilled values may carry
// unrelated client data.
func pick(values map[string]any, table []model.FieldSpec) map[string]any {
	out := make(map[string]any, len(table))
	for _, spec := range table {
		if value, ok := values[spec.Key]; ok {
			out[spec.Key] = value
		}
	}
	return out
}

func flattenForm(values map[string]string) string {
	form := url.Values{}
	for key, value := range values {
		form.Set(key, value)
	}
	return form.Encode()
}

func prettyPrint(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, values[key])
	}
	return b.String()
}
