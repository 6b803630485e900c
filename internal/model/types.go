package model

// Category is the semantic bucket a placeholder key is classified into.
type Category string

const (
	CategoryPersonActive  Category = "person_active"
	CategoryPersonPassive Category = "person_passive"
	CategoryThirdParty    Category = "third_party"
	CategoryClient        Category = "client"
	CategoryAddress       Category = "address"
	CategoryProcess       Category = "process"
	CategoryAuthority     Category = "authority"
	CategoryOther         Category = "other"
)

// IsPersona reports whether keys of the category can repeat as numbered
// instances and are therefore grouped by the persona aggregator.
func (c Category) IsPersona() bool {
	switch c {
	case CategoryPersonActive, CategoryPersonPassive, CategoryThirdParty, CategoryAuthority:
		return true
	default:
		return false
	}
}

// SubCategory splits persona fields into personal data and address blocks.
type SubCategory string

const (
	SubCategoryData    SubCategory = "data"
	SubCategoryAddress SubCategory = "address"
)

// FieldType is the input control a renderer should emit for a field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeDate     FieldType = "date"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeTel, FieldTypeDate, FieldTypeTextarea, FieldTypeSelect:
		return true
	default:
		return false
	}
}

// ClassifiedField is the form definition derived from one placeholder key.
// Instance is nil for keys that do not carry an instance number.
type ClassifiedField struct {
	Key         string      `json:"key" yaml:"key"`
	Category    Category    `json:"category" yaml:"category"`
	Instance    *int        `json:"instance,omitempty" yaml:"instance,omitempty"`
	SubCategory SubCategory `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Type        FieldType   `json:"type" yaml:"type"`
	Label       string      `json:"label" yaml:"label"`
	GroupLabel  string      `json:"groupLabel,omitempty" yaml:"groupLabel,omitempty"`
	Required    bool        `json:"required" yaml:"required"`
	Options     []string    `json:"options,omitempty" yaml:"options,omitempty"`
	Order       int         `json:"order" yaml:"order"`
}

// InstanceOrDefault returns the instance number, treating nil as 1.
func (f ClassifiedField) InstanceOrDefault() int {
	if f.Instance == nil {
		return 1
	}
	return *f.Instance
}

// PersonaGroup gathers the fields that share a (category, instance) pair.
type PersonaGroup struct {
	Category Category          `json:"category" yaml:"category"`
	Instance *int              `json:"instance,omitempty" yaml:"instance,omitempty"`
	Title    string            `json:"title" yaml:"title"`
	Fields   []ClassifiedField `json:"fields" yaml:"fields"`
	Data     []ClassifiedField `json:"data,omitempty" yaml:"data,omitempty"`
	Address  []ClassifiedField `json:"address,omitempty" yaml:"address,omitempty"`
}

// FormSection is one rendered block of the form. Persona sections carry
// subsections (data, then address) instead of direct fields.
type FormSection struct {
	Name        string            `json:"name" yaml:"name"`
	Title       string            `json:"title" yaml:"title"`
	Category    Category          `json:"category" yaml:"category"`
	Instance    *int              `json:"instance,omitempty" yaml:"instance,omitempty"`
	Fields      []ClassifiedField `json:"fields,omitempty" yaml:"fields,omitempty"`
	Subsections []FormSection     `json:"subsections,omitempty" yaml:"subsections,omitempty"`
}

// FieldCount returns the number of fields held by the section and its
// subsections.
func (s FormSection) FieldCount() int {
	total := len(s.Fields)
	for _, sub := range s.Subsections {
		total += sub.FieldCount()
	}
	return total
}

// FormSchema is the ordered, sectioned description of a template's form.
type FormSchema struct {
	TemplateID    string        `json:"templateId,omitempty" yaml:"templateId,omitempty"`
	Fingerprint   string        `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Sections      []FormSection `json:"sections" yaml:"sections"`
	TotalFields   int           `json:"totalFields" yaml:"totalFields"`
	TotalPersonas int           `json:"totalPersonas" yaml:"totalPersonas"`
}

// FieldSpec is one row of the flat key table consumed by the fill step.
type FieldSpec struct {
	Key      string    `json:"key" yaml:"key"`
	Category Category  `json:"category" yaml:"category"`
	Type     FieldType `json:"type" yaml:"type"`
	Label    string    `json:"label" yaml:"label"`
	Required bool      `json:"required" yaml:"required"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Section  string    `json:"section" yaml:"section"`
}

// Table flattens the schema into key rows, in schema order.
func (s FormSchema) Table() []FieldSpec {
	var rows []FieldSpec
	var visit func(section FormSection)
	visit = func(section FormSection) {
		for _, field := range section.Fields {
			rows = append(rows, FieldSpec{
				Key:      field.Key,
				Category: field.Category,
				Type:     field.Type,
				Label:    field.Label,
				Required: field.Required,
				Options:  append([]string(nil), field.Options...),
				Section:  section.Name,
			})
		}
		for _, sub := range section.Subsections {
			visit(sub)
		}
	}
	for _, section := range s.Sections {
		visit(section)
	}
	return rows
}

// Fields returns every field in schema order.
func (s FormSchema) Fields() []ClassifiedField {
	var out []ClassifiedField
	var visit func(section FormSection)
	visit = func(section FormSection) {
		out = append(out, section.Fields...)
		for _, sub := range section.Subsections {
			visit(sub)
		}
	}
	for _, section := range s.Sections {
		visit(section)
	}
	return out
}

// DiagnosticKind enumerates the non-fatal conditions reported alongside a
// schema.
type DiagnosticKind string

const (
	DiagnosticExtractionEmpty DiagnosticKind = "extraction_empty"
	DiagnosticUnclassified    DiagnosticKind = "unclassified"
	DiagnosticInstanceParse   DiagnosticKind = "instance_parse"
	DiagnosticOverrideOrphan  DiagnosticKind = "override_orphan"
	DiagnosticOverrideInvalid DiagnosticKind = "override_invalid"
	DiagnosticReconciled      DiagnosticKind = "reconciled"
)

// Severity ranks diagnostics for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Diagnostic describes a condition the administrator may want to review.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
	Severity Severity       `json:"severity" yaml:"severity"`
	Key      string         `json:"key,omitempty" yaml:"key,omitempty"`
	Message  string         `json:"message" yaml:"message"`
}

// PersonaCount reports how many distinct instances of a persona category a
// template defines.
type PersonaCount struct {
	Category  Category `json:"category" yaml:"category"`
	Count     int      `json:"count" yaml:"count"`
	Instances []int    `json:"instances" yaml:"instances"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
