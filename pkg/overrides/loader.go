package overrides

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML override files.
// When fsys is nil or no override files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isOverrideFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("overrides: read %s: %w", path, err)
		}
		return store.load(data, path)
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// LoadDir loads every override file under dir. An empty dir returns an empty
// store.
func LoadDir(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return NewStore(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("overrides: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("overrides: %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// MergeStore loads the overrides of another store into s. Templates defined in
// both stores are combined key by key, other wins.
func (s *Store) MergeStore(other *Store) {
	if other == nil {
		return
	}
	for _, id := range other.TemplateIDs() {
		tpl, _ := other.Template(id)
		s.mu.Lock()
		if s.templates == nil {
			s.templates = make(map[string]Template)
		}
		existing, ok := s.templates[id]
		if !ok {
			existing = Template{ID: id, Source: tpl.Source, Fields: make(map[string]FieldOverride, len(tpl.Fields))}
		}
		for key, ov := range tpl.Fields {
			existing.Fields[key] = cloneOverride(ov)
		}
		s.templates[id] = existing
		s.mu.Unlock()
	}
}

type documentFile struct {
	Templates map[string]templateFile `json:"templates" yaml:"templates"`
}

type templateFile struct {
	Fields map[string]FieldOverride `json:"fields" yaml:"fields"`
}

func (s *Store) load(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for rawID, raw := range doc.Templates {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("overrides: file %s defines an empty template id", source)
		}
		if _, exists := s.templates[id]; exists {
			return fmt.Errorf("overrides: duplicate template %q (file %s)", id, source)
		}

		tpl, err := normaliseTemplate(raw, id, source)
		if err != nil {
			return err
		}
		s.templates[id] = tpl
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("overrides: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("overrides: parse %s: invalid JSON or YAML", source)
}

func normaliseTemplate(raw templateFile, id, source string) (Template, error) {
	tpl := Template{
		ID:     id,
		Source: source,
		Fields: make(map[string]FieldOverride, len(raw.Fields)),
	}

	for key, ov := range raw.Fields {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			return Template{}, fmt.Errorf("overrides: template %q (file %s) defines an empty field key", id, source)
		}
		if _, exists := tpl.Fields[trimmed]; exists {
			return Template{}, fmt.Errorf("overrides: template %q (file %s) defines duplicate field %q", id, source, trimmed)
		}
		cloned := cloneOverride(ov)
		cloned.Key = trimmed
		tpl.Fields[trimmed] = cloned
	}

	return tpl, nil
}

func isOverrideFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadWithDefaults returns the bundled office defaults merged with the
// overrides found under dir. Files under dir win key by key.
func LoadWithDefaults(dir string) (*Store, error) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		return nil, fmt.Errorf("overrides: load defaults: %w", err)
	}
	local, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	store.MergeStore(local)
	return store, nil
}
