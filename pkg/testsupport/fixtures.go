package testsupport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docforms/pkg/document"
	pkgmodel "github.com/goliatone/go-docforms/pkg/model"
)

// LoadDocument reads a template fixture (plain text, Google Docs JSON or
// native document JSON) and fails the test on error.
func LoadDocument(t *testing.T, path string) document.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (document.Document, error) {
	if path == "" {
		return document.Document{}, errors.New("testsupport: document path is required")
	}
	doc, err := document.ReadFile(path)
	if err != nil {
		return document.Document{}, fmt.Errorf("testsupport: %w", err)
	}
	return doc, nil
}

// TextDocument builds a document with one paragraph per line.
func TextDocument(id string, lines ...string) document.Document {
	return document.FromText(id, strings.Join(lines, "\n"))
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// SectionNames lists the section names of schema in order.
func SectionNames(schema pkgmodel.FormSchema) []string {
	names := make([]string, 0, len(schema.Sections))
	for _, section := range schema.Sections {
		names = append(names, section.Name)
	}
	return names
}

// SectionTitles lists the section titles of schema in order.
func SectionTitles(schema pkgmodel.FormSchema) []string {
	titles := make([]string, 0, len(schema.Sections))
	for _, section := range schema.Sections {
		titles = append(titles, section.Title)
	}
	return titles
}

// FieldKeys lists the keys of fields in order.
func FieldKeys(fields []pkgmodel.ClassifiedField) []string {
	keys := make([]string, 0, len(fields))
	for _, field := range fields {
		keys = append(keys, field.Key)
	}
	return keys
}
