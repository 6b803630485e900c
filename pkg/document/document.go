package document

import (
	"strconv"
	"strings"
)

// RunKind tells where in the source document a text run was found.
type RunKind string

const (
	RunParagraph RunKind = "paragraph"
	RunTableCell RunKind = "table_cell"
	RunHeader    RunKind = "header"
	RunFooter    RunKind = "footer"
	RunFootnote  RunKind = "footnote"
)

// TextRun is one ordered piece of document text. Paragraph runs hold a whole
// paragraph so placeholders split across styled spans are rejoined.
type TextRun struct {
	Kind     RunKind `json:"kind" yaml:"kind"`
	Text     string  `json:"text" yaml:"text"`
	Location string  `json:"location,omitempty" yaml:"location,omitempty"`
}

// Document is the immutable snapshot the tokenizer reads.
type Document struct {
	ID    string    `json:"id,omitempty" yaml:"id,omitempty"`
	Title string    `json:"title,omitempty" yaml:"title,omitempty"`
	Runs  []TextRun `json:"runs" yaml:"runs"`
}

// FromText builds a document from plain text, one paragraph per line.
func FromText(id, text string) Document {
	doc := Document{ID: id}
	for idx, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		doc.Runs = append(doc.Runs, TextRun{
			Kind:     RunParagraph,
			Text:     line,
			Location: "line:" + strconv.Itoa(idx+1),
		})
	}
	return doc
}

// Empty reports whether the document holds any text.
func (d Document) Empty() bool {
	for _, run := range d.Runs {
		if strings.TrimSpace(run.Text) != "" {
			return false
		}
	}
	return true
}
