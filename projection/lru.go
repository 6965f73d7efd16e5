package projection

import (
	"container/list"
	"sync"
	"time"
)

// resultCache is a small LRU cache with TTL expiry for projection
// results. Entries keyed by stale revisions age out via the TTL; the size
// bound keeps a scope-happy caller from growing it without limit.
type resultCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheEntry struct {
	key       string
	result    Result
	expiresAt time.Time
}

func newResultCache(maxSize int, ttl time.Duration) *resultCache {
	return &resultCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *resultCache) get(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		return Result{}, false
	}

	entry := elem.Value.(*cacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.removeElement(elem)
		return Result{}, false
	}

	c.lru.MoveToFront(elem)
	return entry.result, true
}

func (c *resultCache) set(key string, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry{
		key:       key,
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = entry
		c.lru.MoveToFront(elem)
		return
	}

	c.items[key] = c.lru.PushFront(entry)

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *resultCache) removeElement(elem *list.Element) {
	entry := elem.Value.(*cacheEntry)
	delete(c.items, entry.key)
	c.lru.Remove(elem)
}

func (c *resultCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
