package model

import internalmodel "github.com/goliatone/go-docforms/internal/model"

// Category re-exports the internal Category enumeration.
type Category = internalmodel.Category

const (
	CategoryPersonActive  = internalmodel.CategoryPersonActive
	CategoryPersonPassive = internalmodel.CategoryPersonPassive
	CategoryThirdParty    = internalmodel.CategoryThirdParty
	CategoryClient        = internalmodel.CategoryClient
	CategoryAddress       = internalmodel.CategoryAddress
	CategoryProcess       = internalmodel.CategoryProcess
	CategoryAuthority     = internalmodel.CategoryAuthority
	CategoryOther         = internalmodel.CategoryOther
)

// SubCategory re-exports the persona sub-bucket enumeration.
type SubCategory = internalmodel.SubCategory

const (
	SubCategoryData    = internalmodel.SubCategoryData
	SubCategoryAddress = internalmodel.SubCategoryAddress
)

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeEmail    = internalmodel.FieldTypeEmail
	FieldTypeTel      = internalmodel.FieldTypeTel
	FieldTypeDate     = internalmodel.FieldTypeDate
	FieldTypeTextarea = internalmodel.FieldTypeTextarea
	FieldTypeSelect   = internalmodel.FieldTypeSelect
)

// DiagnosticKind re-exports the diagnostic taxonomy.
type DiagnosticKind = internalmodel.DiagnosticKind

const (
	DiagnosticExtractionEmpty = internalmodel.DiagnosticExtractionEmpty
	DiagnosticUnclassified    = internalmodel.DiagnosticUnclassified
	DiagnosticInstanceParse   = internalmodel.DiagnosticInstanceParse
	DiagnosticOverrideOrphan  = internalmodel.DiagnosticOverrideOrphan
	DiagnosticOverrideInvalid = internalmodel.DiagnosticOverrideInvalid
	DiagnosticReconciled      = internalmodel.DiagnosticReconciled
)

// Severity re-exports the diagnostic severity levels.
type Severity = internalmodel.Severity

const (
	SeverityInfo    = internalmodel.SeverityInfo
	SeverityWarning = internalmodel.SeverityWarning
)

type ClassifiedField = internalmodel.ClassifiedField
type PersonaGroup = internalmodel.PersonaGroup
type FormSection = internalmodel.FormSection
type FormSchema = internalmodel.FormSchema
type FieldSpec = internalmodel.FieldSpec
type Diagnostic = internalmodel.Diagnostic
type PersonaCount = internalmodel.PersonaCount

// IntPtr returns a pointer to v, for building instance numbers.
func IntPtr(v int) *int {
	return internalmodel.IntPtr(v)
}

// DefaultLabeler humanises a placeholder key.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

// DefaultTitles exposes the built-in section headings.
func DefaultTitles() map[Category]string {
	out := make(map[Category]string, len(internalmodel.DefaultTitles))
	for category, title := range internalmodel.DefaultTitles {
		out[category] = title
	}
	return out
}

// TitleFor returns the built-in heading for category.
func TitleFor(category Category) string {
	return internalmodel.TitleFor(category)
}
