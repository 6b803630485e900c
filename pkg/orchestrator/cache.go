package orchestrator

import "sync"

// Cache stores the last analysis per template. Implementations must be safe
// for concurrent use.
type Cache interface {
	Get(templateID string) (Entry, bool)
	Put(templateID string, entry Entry)
	Invalidate(templateID string)
}

// Entry is a cached analysis. Fingerprint combines the placeholder-set,
// override and orchestrator settings fingerprints the result was computed
// from.
type Entry struct {
	Fingerprint string
	Result      Result
}

// MemoryCache is an in-process Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Entry)}
}

func (c *MemoryCache) Get(templateID string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[templateID]
	return entry, ok
}

func (c *MemoryCache) Put(templateID string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[templateID] = entry
}

func (c *MemoryCache) Invalidate(templateID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, templateID)
}

// Len reports the number of cached templates.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
