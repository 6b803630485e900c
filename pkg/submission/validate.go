package submission

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docforms/pkg/model"
)

// Issue is a problem with a submitted value.
type Issue struct {
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// Validate checks values against table. Missing or blank required keys and
// keys absent from the table are reported alongside the per-field schema
// checks. Issues are sorted by field.
func Validate(ctx context.Context, table []model.FieldSpec, values map[string]any) []Issue {
	var issues []Issue
	known := make(map[string]struct{}, len(table))

	for _, spec := range table {
		if ctx != nil && ctx.Err() != nil {
			return append(issues, Issue{Message: ctx.Err().Error()})
		}
		known[spec.Key] = struct{}{}

		value, present := values[spec.Key]
		if !present || isBlank(value) {
			if spec.Required {
				issues = append(issues, Issue{Field: spec.Key, Message: "value is required"})
			}
			continue
		}

		prop := Property(spec)
		if err := prop.VisitJSON(value, openapi3.MultiErrors()); err != nil {
			issues = append(issues, issuesFromError(spec.Key, err)...)
		}
	}

	for key := range values {
		if _, ok := known[key]; !ok {
			issues = append(issues, Issue{Field: key, Message: "key is not a placeholder of this template"})
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Field < issues[j].Field
	})
	return issues
}

// ReplacementMap maps every "{{key}}" of table to its submitted value. Keys
// without a value map to the empty string so no placeholder survives the
// fill step.
func ReplacementMap(table []model.FieldSpec, values map[string]any) map[string]string {
	out := make(map[string]string, len(table))
	for _, spec := range table {
		token := "{{" + spec.Key + "}}"
		value, ok := values[spec.Key]
		if !ok || value == nil {
			out[token] = ""
			continue
		}
		out[token] = strings.TrimSpace(fmt.Sprint(value))
	}
	return out
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func issuesFromError(field string, err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Issue
		for _, item := range multi {
			out = append(out, issueFromError(field, item))
		}
		return out
	}
	return []Issue{issueFromError(field, err)}
}

func issueFromError(field string, err error) Issue {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) && strings.TrimSpace(schemaErr.Reason) != "" {
		return Issue{Field: field, Message: strings.TrimSpace(schemaErr.Reason)}
	}
	return Issue{Field: field, Message: strings.TrimSpace(err.Error())}
}
