package timeline

import (
	"sync"

	"github.com/aretw0/storyboard/pkg/domain"
)

// Cache memoizes one compiled timeline per key and revision. The key is usually
// an artboard or chain id and the revision the store's mutation counter.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	revision uint64
	timeline domain.ComputedTimeline
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get returns the timeline for key at revision, calling build on a miss.
func (c *Cache) Get(key string, revision uint64, build func() domain.ComputedTimeline) domain.ComputedTimeline {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.revision == revision {
		c.mu.Unlock()
		return e.timeline
	}
	c.mu.Unlock()

	tl := build()

	c.mu.Lock()
	c.entries[key] = cacheEntry{revision: revision, timeline: tl}
	c.mu.Unlock()
	return tl
}

// Invalidate drops the entry for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
