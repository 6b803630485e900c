package render

import (
	"strings"

	"github.com/goliatone/go-docforms/pkg/model"
	"github.com/goliatone/go-docforms/pkg/orchestrator"
)

// ApplySubset returns result restricted to the sections matching subset. The
// key table and totals are recomputed; diagnostics are kept as they describe
// the whole template. An empty subset returns result unchanged.
func ApplySubset(result orchestrator.Result, subset FieldSubset) orchestrator.Result {
	matcher := newSubsetMatcher(subset)
	if matcher.empty() {
		return result
	}

	schema := result.Schema
	sections := make([]model.FormSection, 0, len(schema.Sections))
	schema.TotalFields = 0
	schema.TotalPersonas = 0
	for _, section := range schema.Sections {
		if !matcher.matches(section) {
			continue
		}
		sections = append(sections, section)
		schema.TotalFields += section.FieldCount()
		if section.Category.IsPersona() {
			schema.TotalPersonas++
		}
	}
	schema.Sections = sections

	result.Schema = schema
	result.Table = schema.Table()
	return result
}

type subsetMatcher struct {
	sections   map[string]struct{}
	prefixes   []string
	categories map[string]struct{}
}

func newSubsetMatcher(subset FieldSubset) subsetMatcher {
	m := subsetMatcher{categories: normaliseTokens(subset.Categories)}
	for token := range normaliseTokens(subset.Sections) {
		if prefix, ok := strings.CutSuffix(token, "*"); ok {
			m.prefixes = append(m.prefixes, prefix)
			continue
		}
		if m.sections == nil {
			m.sections = make(map[string]struct{})
		}
		m.sections[token] = struct{}{}
	}
	return m
}

func (m subsetMatcher) empty() bool {
	return len(m.sections) == 0 && len(m.prefixes) == 0 && len(m.categories) == 0
}

func (m subsetMatcher) matches(section model.FormSection) bool {
	name := normaliseToken(section.Name)
	if _, ok := m.sections[name]; ok {
		return true
	}
	for _, prefix := range m.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	_, ok := m.categories[normaliseToken(string(section.Category))]
	return ok
}

// ParseTokenList splits a comma separated flag value into trimmed,
// lower-cased tokens.
func ParseTokenList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if token := normaliseToken(part); token != "" {
			out = append(out, token)
		}
	}
	return out
}

func normaliseTokens(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	result := make(map[string]struct{}, len(values))
	for _, value := range values {
		token := normaliseToken(value)
		if token == "" {
			continue
		}
		result[token] = struct{}{}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func normaliseToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
