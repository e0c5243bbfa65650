// Package cache provides the bounded LRU response cache used by the HTTP
// transport. Entries hold only lightweight reusable fields (status, headers,
// timing) and never body bytes, so a hit short-circuits the network call
// without letting the cache grow past a fixed memory footprint.
package cache

import (
	"container/list"
	"net/http"
	"sync"
	"time"
)

// Entry is a cached response summary. Bodies are deliberately absent:
// classification re-runs only on live responses.
type Entry struct {
	StatusCode int
	Headers    http.Header
	Time       time.Duration
	Err        string
}

// LRU is a thread-safe least-recently-used cache keyed by URL.
type LRU struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List
	items   map[string]*list.Element

	hits   int64
	misses int64
}

type lruItem struct {
	key   string
	entry Entry
}

// New creates an LRU cache holding at most maxSize entries. Sizes below 1
// fall back to a single-entry cache.
func New(maxSize int) *LRU {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRU{
		maxSize: maxSize,
		order:   list.New(),
		items:   make(map[string]*list.Element, maxSize),
	}
}

// Get returns the entry for key and marks it recently used.
func (c *LRU) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		return Entry{}, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*lruItem).entry, true
}

// Put stores an entry for key, evicting the least recently used entry once
// the cache is full.
func (c *LRU) Put(key string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*lruItem).entry = entry
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruItem).key)
		}
	}

	c.items[key] = c.order.PushFront(&lruItem{key: key, entry: entry})
}

// Contains reports whether key is cached without updating recency.
func (c *LRU) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// Len returns the current number of cached entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops all entries and resets the hit/miss counters.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element, c.maxSize)
	c.hits = 0
	c.misses = 0
}

// Stats is a snapshot of cache effectiveness.
type Stats struct {
	Size    int     `json:"size"`
	MaxSize int     `json:"max_size"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Stats returns current cache statistics.
func (c *LRU) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Size:    c.order.Len(),
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.misses,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}
