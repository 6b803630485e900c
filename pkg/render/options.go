package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the analysis result.
type RenderOptions struct {
	// Values pre-populates fields by placeholder key. Interactive renderers
	// use them as prompt defaults.
	Values map[string]any
	// Subset restricts the output to matching sections. The zero value keeps
	// every section.
	Subset FieldSubset
	// Compact disables indentation for text encoders.
	Compact bool
}

// FieldSubset selects sections by name ("person_active_2"), by name prefix
// ending in "*" ("person_active*") or by category ("process").
type FieldSubset struct {
	Sections   []string
	Categories []string
}
