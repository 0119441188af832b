package router

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/citeflex/citeflex/internal/core/model"
)

const (
	cacheTTL     = 30 * time.Minute
	cacheMaxSize = 200
)

// cachedResult pairs resolved metadata with its formatted rendering so a
// repeat query skips both the provider round trip and the formatter.
type cachedResult struct {
	Metadata  *model.CitationMetadata
	Formatted string
}

type cacheEntry struct {
	result   cachedResult
	storedAt time.Time
}

// resultsCache is a thread-safe in-memory cache keyed by normalized query
// and style. Entries expire lazily on Get; when the cache is full the
// oldest entry is evicted on Set.
type resultsCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	maxSize int
	entries map[string]cacheEntry
}

func newResultsCache() *resultsCache {
	return &resultsCache{
		ttl:     cacheTTL,
		maxSize: cacheMaxSize,
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(query, style string) string {
	normalized := strings.ToLower(strings.TrimSpace(query)) + "|" + style
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])[:16]
}

func (c *resultsCache) Get(query, style string) (cachedResult, bool) {
	key := cacheKey(query, style)

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return cachedResult{}, false
	}

	if time.Since(entry.storedAt) >= c.ttl {
		c.mu.Lock()
		if current, still := c.entries[key]; still && time.Since(current.storedAt) >= c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return cachedResult{}, false
	}

	return entry.result, true
}

func (c *resultsCache) Set(query, style string, result cachedResult) {
	key := cacheKey(query, style)

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		if _, exists := c.entries[key]; !exists {
			c.evictOldestLocked()
		}
	}
	c.entries[key] = cacheEntry{result: result, storedAt: time.Now()}
}

func (c *resultsCache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *resultsCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func (c *resultsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
