package overrides

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-docforms/pkg/model"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// sanitizeLabel strips markup from administrator-entered labels. Entities are
// decoded again so labels such as "Nome & Sobrenome" survive untouched.
func sanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	cleaned := html.UnescapeString(labelPolicy.Sanitize(trimmed))
	return strings.TrimSpace(cleaned)
}

// Apply returns field with the override's attributes taking precedence.
// Applying the same override any number of times yields the same field.
// Attributes that cannot be applied are reported as diagnostics.
func (ov FieldOverride) Apply(field model.ClassifiedField) (model.ClassifiedField, []model.Diagnostic) {
	var diags []model.Diagnostic

	if ov.Label != "" {
		if label := sanitizeLabel(ov.Label); label != "" {
			field.Label = label
		} else {
			diags = append(diags, invalid(field.Key, "label %q is empty after sanitising; keeping %q", ov.Label, field.Label))
		}
	}

	if ov.Type != "" {
		typ := model.FieldType(strings.ToLower(strings.TrimSpace(ov.Type)))
		if typ.Valid() {
			field.Type = typ
		} else {
			diags = append(diags, invalid(field.Key, "unknown field type %q; keeping %q", ov.Type, field.Type))
		}
	}

	if ov.Required != nil {
		field.Required = *ov.Required
	}
	if ov.Order != nil {
		field.Order = *ov.Order
	}
	if len(ov.Options) > 0 {
		field.Options = append([]string(nil), ov.Options...)
	}
	if field.Type != model.FieldTypeSelect {
		field.Options = nil
	} else if len(field.Options) == 0 {
		diags = append(diags, invalid(field.Key, "select field has no options"))
	}

	return field, diags
}

// Merge applies the global and template overrides to fields. Template
// overrides referencing keys absent from fields are ignored and reported;
// global overrides are expected to miss most templates and are not.
func (s *Store) Merge(templateID string, fields []model.ClassifiedField) ([]model.ClassifiedField, []model.Diagnostic) {
	out := append([]model.ClassifiedField(nil), fields...)
	if s.Empty() {
		return out, nil
	}

	global, _ := s.Template(GlobalTemplate)
	var tpl Template
	if templateID != GlobalTemplate {
		tpl, _ = s.Template(templateID)
	}

	var diags []model.Diagnostic
	present := make(map[string]struct{}, len(out))
	for i, field := range out {
		present[field.Key] = struct{}{}
		if ov, ok := global.Fields[field.Key]; ok {
			var d []model.Diagnostic
			out[i], d = ov.Apply(out[i])
			diags = append(diags, d...)
		}
		if ov, ok := tpl.Fields[field.Key]; ok {
			var d []model.Diagnostic
			out[i], d = ov.Apply(out[i])
			diags = append(diags, d...)
		}
	}

	for _, key := range tpl.Keys() {
		if _, ok := present[key]; ok {
			continue
		}
		diags = append(diags, model.Diagnostic{
			Kind:     model.DiagnosticOverrideOrphan,
			Severity: model.SeverityWarning,
			Key:      key,
			Message:  fmt.Sprintf("override for %q ignored: key is no longer present in template %q", key, templateID),
		})
	}
	return out, diags
}

// Fingerprint hashes the overrides that affect templateID so cached schemas
// can be invalidated when an administrator edits them.
func (s *Store) Fingerprint(templateID string) string {
	if s.Empty() {
		return ""
	}
	var parts []string
	for _, id := range []string{GlobalTemplate, templateID} {
		tpl, ok := s.Template(id)
		if !ok {
			continue
		}
		for _, key := range tpl.Keys() {
			payload, err := json.Marshal(tpl.Fields[key])
			if err != nil {
				continue
			}
			parts = append(parts, id+"\x00"+key+"\x00"+string(payload))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64String(strings.Join(parts, "\n")), 16)
}

func invalid(key, format string, args ...any) model.Diagnostic {
	return model.Diagnostic{
		Kind:     model.DiagnosticOverrideInvalid,
		Severity: model.SeverityWarning,
		Key:      key,
		Message:  fmt.Sprintf(format, args...),
	}
}
