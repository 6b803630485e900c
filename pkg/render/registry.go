package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound is returned when no renderer or alias matches a name.
var ErrNotFound = errors.New("render: renderer not found")

// Registry maps output names ("json", "yaml", "openapi") to renderers. Names
// and aliases are matched case-insensitively so values from flags and config
// files can be used as typed.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	aliases   map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		aliases:   make(map[string]string),
	}
}

// Register adds a renderer under its Name(). Duplicate names, including names
// already taken by an alias, return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := normaliseToken(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	if target, exists := r.aliases[name]; exists {
		return fmt.Errorf("render: %q is already an alias of %q", name, target)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// DefaultAliases returns the alternative names of the built-in renderers.
func DefaultAliases() map[string]string {
	return map[string]string{"yml": "yaml", "oas": "openapi"}
}

// Alias makes alias resolve to the registered renderer name, e.g. "yml" to
// "yaml".
func (r *Registry) Alias(alias, name string) error {
	alias, name = normaliseToken(alias), normaliseToken(name)
	if alias == "" {
		return errors.New("render: alias is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.renderers[name]; !ok {
		return fmt.Errorf("%w: cannot alias %q to %q", ErrNotFound, alias, name)
	}
	if _, exists := r.renderers[alias]; exists {
		return fmt.Errorf("render: alias %q shadows a registered renderer", alias)
	}
	r.aliases[alias] = name
	return nil
}

// Get retrieves a renderer by name or alias.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if renderer, ok := r.lookup(name); ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Resolve returns the renderer for name, or for fallback when name is blank.
// The error lists the registered names.
func (r *Registry) Resolve(name, fallback string) (Renderer, error) {
	if strings.TrimSpace(name) == "" {
		name = fallback
	}
	renderer, err := r.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(r.List(), ", "))
	}
	return renderer, nil
}

// MustGet panics if the renderer is missing.
func (r *Registry) MustGet(name string) Renderer {
	renderer, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return renderer
}

// List returns the sorted renderer names. Aliases are not listed.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name or alias resolves to a renderer.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.lookup(name)
	return ok
}

func (r *Registry) lookup(name string) (Renderer, bool) {
	key := normaliseToken(name)
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	renderer, ok := r.renderers[key]
	return renderer, ok
}
