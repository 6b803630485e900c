// Package submission describes the data a fill step must supply for a
// template: an OpenAPI object schema built from the key table, value
// validation against it, and the final placeholder replacement map.
package submission

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docforms/pkg/model"
)

const (
	datePattern  = `^(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4})$`
	emailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`
	telPattern   = `^[0-9()+\-.\s]{8,20}$`
)

// Schema returns an object schema with one string property per key. Required
// keys must be non-empty; unknown keys are rejected.
func Schema(table []model.FieldSpec) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Properties = make(openapi3.Schemas, len(table))
	closed := false
	schema.AdditionalProperties = openapi3.AdditionalProperties{Has: &closed}

	for _, spec := range table {
		schema.Properties[spec.Key] = openapi3.NewSchemaRef("", Property(spec))
		if spec.Required {
			schema.Required = append(schema.Required, spec.Key)
		}
	}
	return schema
}

// Property returns the schema of a single key.
func Property(spec model.FieldSpec) *openapi3.Schema {
	prop := openapi3.NewStringSchema()
	prop.Title = spec.Label
	if spec.Section != "" {
		prop.Extensions = map[string]any{"x-section": spec.Section}
	}

	switch spec.Type {
	case model.FieldTypeEmail:
		prop.Format = "email"
		prop.Pattern = emailPattern
	case model.FieldTypeDate:
		prop.Pattern = datePattern
		prop.Description = "AAAA-MM-DD ou DD/MM/AAAA"
	case model.FieldTypeTel:
		prop.Pattern = telPattern
	case model.FieldTypeSelect:
		for _, option := range spec.Options {
			prop.Enum = append(prop.Enum, option)
		}
	}

	if spec.Required {
		prop.MinLength = 1
	}
	return prop
}
