package document

import (
	"regexp"

	"github.com/goliatone/go-docforms/pkg/model"
)

// placeholderPattern matches {{identifier}} tokens. Whitespace inside the
// braces is tolerated; the identifier keeps its original casing.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([\p{L}\p{N}_]+)\s*\}\}`)

// ExtractKeys returns the unique placeholder keys of doc in first-occurrence
// order. A document without placeholders yields an empty slice and an
// extraction warning; it is never an error.
func ExtractKeys(doc Document) ([]string, []model.Diagnostic) {
	seen := make(map[string]struct{})
	keys := []string{}
	for _, run := range doc.Runs {
		for _, match := range placeholderPattern.FindAllStringSubmatch(run.Text, -1) {
			key := match[1]
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}

	if len(keys) == 0 {
		return keys, []model.Diagnostic{{
			Kind:     model.DiagnosticExtractionEmpty,
			Severity: model.SeverityWarning,
			Message:  "document contains no {{placeholder}} tokens; the form schema will be empty",
		}}
	}
	return keys, nil
}

// Occurrence counts where a key appears in the document.
type Occurrence struct {
	Key          string `json:"key" yaml:"key"`
	Count        int    `json:"count" yaml:"count"`
	InParagraphs int    `json:"inParagraphs" yaml:"inParagraphs"`
	InTables     int    `json:"inTables" yaml:"inTables"`
	InOther      int    `json:"inOther" yaml:"inOther"`
}

// Occurrences reports per-key counts in first-occurrence order.
func Occurrences(doc Document) []Occurrence {
	index := make(map[string]int)
	var out []Occurrence
	for _, run := range doc.Runs {
		for _, match := range placeholderPattern.FindAllStringSubmatch(run.Text, -1) {
			key := match[1]
			idx, ok := index[key]
			if !ok {
				idx = len(out)
				index[key] = idx
				out = append(out, Occurrence{Key: key})
			}
			occ := &out[idx]
			occ.Count++
			switch run.Kind {
			case RunParagraph:
				occ.InParagraphs++
			case RunTableCell:
				occ.InTables++
			default:
				occ.InOther++
			}
		}
	}
	return out
}
