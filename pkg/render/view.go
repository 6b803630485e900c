package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/model"
	"github.com/goliatone/go-docforms/pkg/orchestrator"
)

// View selects the part of an analysis result a text encoder emits.
type View string

const (
	ViewFull     View = "full"
	ViewSchema   View = "schema"
	ViewTable    View = "table"
	ViewPersonas View = "personas"
)

// ParseView validates a view name. The empty string selects ViewFull.
func ParseView(raw string) (View, error) {
	switch view := View(strings.ToLower(strings.TrimSpace(raw))); view {
	case "":
		return ViewFull, nil
	case ViewFull, ViewSchema, ViewTable, ViewPersonas:
		return view, nil
	default:
		return "", fmt.Errorf("render: unknown view %q", raw)
	}
}

// PersonaReport is the payload of ViewPersonas.
type PersonaReport struct {
	TemplateID   string               `json:"templateId,omitempty" yaml:"templateId,omitempty"`
	Multiplicity []model.PersonaCount `json:"multiplicity" yaml:"multiplicity"`
	Suggestions  []string             `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// TableReport is the payload of ViewTable.
type TableReport struct {
	TemplateID  string                `json:"templateId,omitempty" yaml:"templateId,omitempty"`
	Fingerprint string                `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Fields      []model.FieldSpec     `json:"fields" yaml:"fields"`
	Occurrences []document.Occurrence `json:"occurrences,omitempty" yaml:"occurrences,omitempty"`
}

// Project returns the value a text encoder should serialize for view.
func Project(result orchestrator.Result, view View) any {
	switch view {
	case ViewSchema:
		return result.Schema
	case ViewTable:
		return TableReport{
			TemplateID:  result.Schema.TemplateID,
			Fingerprint: result.Schema.Fingerprint,
			Fields:      result.Table,
			Occurrences: result.Occurrences,
		}
	case ViewPersonas:
		return PersonaReport{
			TemplateID:   result.Schema.TemplateID,
			Multiplicity: result.Multiplicity,
			Suggestions:  result.Suggestions,
		}
	default:
		return result
	}
}
