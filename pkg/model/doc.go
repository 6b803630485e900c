// Package model defines the typed form schema consumed by renderers and by the
// document-fill step. Builders reside in internal/model but return the types
// defined here. A FormSchema is an ordered list of sections: cover sections
// (client, generic address), one section per persona instance (authors,
// defendants, third parties, authorities) split into data and address
// subsections, the process section and a trailing section for unclassified
// keys. Every ClassifiedField carries its category, optional instance number,
// input type, label, required flag and order, so renderers need no business
// logic of their own. FormSchema.Table flattens the schema into the key table
// the fill step validates submissions against.
package model
