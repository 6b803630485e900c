package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// FromDocs flattens a Google Docs document into ordered text runs. When the
// document was fetched with tab content the tabs are walked in order;
// otherwise the legacy body is used. Headers, footers and footnotes follow
// the body in id order.
func FromDocs(src *docs.Document) Document {
	if src == nil {
		return Document{}
	}
	doc := Document{ID: src.DocumentId, Title: src.Title}
	w := &docsWalker{doc: &doc}

	if len(src.Tabs) > 0 {
		for _, tab := range src.Tabs {
			w.tab(tab, "tab")
		}
		return doc
	}

	if src.Body != nil {
		w.elements(src.Body.Content, RunParagraph, "body")
	}
	w.headers(src.Headers, "header")
	w.footers(src.Footers, "footer")
	w.footnotes(src.Footnotes, "footnote")
	return doc
}

// ParseDocs decodes a Google Docs JSON payload (documents.get response).
func ParseDocs(data []byte) (Document, error) {
	var src docs.Document
	if err := json.Unmarshal(data, &src); err != nil {
		return Document{}, fmt.Errorf("document: decode google docs json: %w", err)
	}
	if src.Body == nil && len(src.Tabs) == 0 {
		return Document{}, errors.New("document: google docs json has no body or tabs")
	}
	return FromDocs(&src), nil
}

// ReadFile loads a document from disk. JSON files are read as Google Docs
// exports, falling back to the native Document JSON shape; any other file is
// read as plain text.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("document: read %s: %w", path, err)
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return FromText(id, string(data)), nil
	}

	if doc, err := ParseDocs(data); err == nil {
		if doc.ID == "" {
			doc.ID = id
		}
		return doc, nil
	}

	var native Document
	if err := json.Unmarshal(data, &native); err != nil {
		return Document{}, fmt.Errorf("document: parse %s: %w", path, err)
	}
	if native.ID == "" {
		native.ID = id
	}
	return native, nil
}

type docsWalker struct {
	doc *Document
}

func (w *docsWalker) tab(tab *docs.Tab, location string) {
	if tab == nil {
		return
	}
	if tab.TabProperties != nil && tab.TabProperties.TabId != "" {
		location = location + ":" + tab.TabProperties.TabId
	}
	if dt := tab.DocumentTab; dt != nil {
		if dt.Body != nil {
			w.elements(dt.Body.Content, RunParagraph, location+"/body")
		}
		w.headers(dt.Headers, location+"/header")
		w.footers(dt.Footers, location+"/footer")
		w.footnotes(dt.Footnotes, location+"/footnote")
	}
	for _, child := range tab.ChildTabs {
		w.tab(child, location)
	}
}

func (w *docsWalker) headers(headers map[string]docs.Header, location string) {
	for _, id := range sortedKeys(headers) {
		w.elements(headers[id].Content, RunHeader, location+":"+id)
	}
}

func (w *docsWalker) footers(footers map[string]docs.Footer, location string) {
	for _, id := range sortedKeys(footers) {
		w.elements(footers[id].Content, RunFooter, location+":"+id)
	}
}

func (w *docsWalker) footnotes(notes map[string]docs.Footnote, location string) {
	for _, id := range sortedKeys(notes) {
		w.elements(notes[id].Content, RunFootnote, location+":"+id)
	}
}

// elements appends one run per paragraph. Paragraphs inside tables are
// reported as table cells regardless of the surrounding kind.
func (w *docsWalker) elements(content []*docs.StructuralElement, kind RunKind, location string) {
	for idx, el := range content {
		if el == nil {
			continue
		}
		loc := location + "/" + strconv.Itoa(idx)
		switch {
		case el.Paragraph != nil:
			w.paragraph(el.Paragraph, kind, loc)
		case el.Table != nil:
			for r, row := range el.Table.TableRows {
				if row == nil {
					continue
				}
				for c, cell := range row.TableCells {
					if cell == nil {
						continue
					}
					w.elements(cell.Content, RunTableCell, loc+"/r"+strconv.Itoa(r)+"c"+strconv.Itoa(c))
				}
			}
		case el.TableOfContents != nil:
			w.elements(el.TableOfContents.Content, kind, loc)
		}
	}
}

func (w *docsWalker) paragraph(p *docs.Paragraph, kind RunKind, location string) {
	var text strings.Builder
	for _, el := range p.Elements {
		if el == nil || el.TextRun == nil {
			continue
		}
		text.WriteString(el.TextRun.Content)
	}
	if strings.TrimSpace(text.String()) == "" {
		return
	}
	w.doc.Runs = append(w.doc.Runs, TextRun{
		Kind:     kind,
		Text:     strings.TrimRight(text.String(), "\n"),
		Location: location,
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
