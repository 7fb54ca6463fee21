// Package cache provides a bounded LRU cache for analysis results.
package cache

import (
	"container/list"
	"sync"

	"selene/internal/models"
)

// ResultCache is an LRU cache for analysis results keyed by request
// fingerprint. Safe for concurrent use.
type ResultCache struct {
	capacity int
	cache    map[string]*list.Element
	lru      *list.List
	mu       sync.RWMutex
}

type cacheEntry struct {
	key   string
	value *models.AnalysisResult
}

// NewResultCache creates a cache with the given capacity.
func NewResultCache(capacity int) *ResultCache {
	return &ResultCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get returns the cached result for key if present. A full lock is taken
// because a hit reorders the LRU list.
func (c *ResultCache) Get(key string) (*models.AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*cacheEntry).value, true
	}
	return nil, false
}

// Put stores the result for key, evicting the least recently used entry when
// at capacity.
func (c *ResultCache) Put(key string, value *models.AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = value
		return
	}

	entry := &cacheEntry{key: key, value: value}
	elem := c.lru.PushFront(entry)
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Len returns the number of cached entries.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}

// Clear removes all cached entries.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*list.Element)
	c.lru.Init()
}
