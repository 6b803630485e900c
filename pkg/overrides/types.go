package overrides

import (
	"sort"
	"strings"
	"sync"
)

// GlobalTemplate is the template id whose overrides apply to every template.
// Template-specific overrides for the same key take precedence.
const GlobalTemplate = "*"

// Store keeps administrator overrides per template. It is safe for
// concurrent use.
type Store struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{templates: make(map[string]Template)}
}

// Template holds the overrides of one template, keyed by placeholder key.
type Template struct {
	ID     string
	Source string
	Fields map[string]FieldOverride
}

// FieldOverride is an administrator edit of a field's inferred metadata. Zero
// values mean "keep the inferred value"; pointers distinguish an explicit
// false/0 from an absent attribute.
type FieldOverride struct {
	Key      string   `json:"key,omitempty" yaml:"key,omitempty"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Type     string   `json:"type,omitempty" yaml:"type,omitempty"`
	Required *bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Order    *int     `json:"order,omitempty" yaml:"order,omitempty"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Put replaces the overrides of templateID with the supplied list, as loaded
// from a persisted override table. Later entries for the same key win.
func (s *Store) Put(templateID string, list []FieldOverride) {
	id := strings.TrimSpace(templateID)
	tpl := Template{ID: id, Source: "memory", Fields: make(map[string]FieldOverride, len(list))}
	for _, ov := range list {
		key := strings.TrimSpace(ov.Key)
		if key == "" {
			continue
		}
		ov.Key = key
		tpl.Fields[key] = cloneOverride(ov)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.templates == nil {
		s.templates = make(map[string]Template)
	}
	s.templates[id] = tpl
}

// Template returns the overrides registered for id.
func (s *Store) Template(id string) (Template, bool) {
	if s == nil {
		return Template{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	tpl, ok := s.templates[id]
	return tpl, ok
}

// Empty reports whether the store holds any templates.
func (s *Store) Empty() bool {
	if s == nil {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates) == 0
}

// TemplateIDs lists the registered template ids in sorted order.
func (s *Store) TemplateIDs() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.templates))
	for id := range s.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Keys returns the overridden keys of the template in sorted order.
func (t Template) Keys() []string {
	keys := make([]string, 0, len(t.Fields))
	for key := range t.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func cloneOverride(ov FieldOverride) FieldOverride {
	out := ov
	if ov.Required != nil {
		v := *ov.Required
		out.Required = &v
	}
	if ov.Order != nil {
		v := *ov.Order
		out.Order = &v
	}
	if len(ov.Options) > 0 {
		out.Options = append([]string(nil), ov.Options...)
	}
	return out
}
