// Package overrides loads and applies administrator-edited field overrides
// (label, type, required, order, options) on top of the values inferred from
// placeholder keys. Overrides live in JSON or YAML files keyed by template id,
// or are registered programmatically from a persisted table through
// Store.Put. The special "*" template applies office-wide conventions to every
// template. The package keeps the inference pipeline unaware of manual edits:
// callers merge overrides after classification and before the schema is built.
package overrides
