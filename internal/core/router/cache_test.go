package router

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/citeflex/citeflex/internal/core/model"
)

func TestCache_HitAndMiss(t *testing.T) {
	c := newResultsCache()

	_, ok := c.Get("query", "Chicago Manual of Style")
	assert.False(t, ok)

	want := cachedResult{
		Metadata:  &model.CitationMetadata{Type: model.TypeBook, Title: "T"},
		Formatted: "formatted",
	}
	c.Set("query", "Chicago Manual of Style", want)

	got, ok := c.Get("query", "Chicago Manual of Style")
	assert.True(t, ok)
	assert.Equal(t, want, got)

	// A different style is a different key.
	_, ok = c.Get("query", "Other Style")
	assert.False(t, ok)
}

func TestCache_KeyNormalizesQuery(t *testing.T) {
	c := newResultsCache()
	c.Set("  Some Query  ", "s", cachedResult{Formatted: "f"})

	got, ok := c.Get("some query", "s")
	assert.True(t, ok)
	assert.Equal(t, "f", got.Formatted)
}

func TestCache_LazyExpiry(t *testing.T) {
	c := newResultsCache()
	c.Set("query", "s", cachedResult{Formatted: "f"})

	// Age the entry past the TTL.
	key := cacheKey("query", "s")
	entry := c.entries[key]
	entry.storedAt = time.Now().Add(-cacheTTL - time.Minute)
	c.entries[key] = entry

	_, ok := c.Get("query", "s")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be removed on read")
}

func TestCache_EvictsOldestAtCapacity(t *testing.T) {
	c := newResultsCache()
	c.maxSize = 3

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("query-%d", i), "s", cachedResult{Formatted: fmt.Sprintf("f%d", i)})
	}
	// Make query-0 the clear oldest.
	key0 := cacheKey("query-0", "s")
	entry := c.entries[key0]
	entry.storedAt = time.Now().Add(-time.Hour)
	c.entries[key0] = entry

	c.Set("query-3", "s", cachedResult{Formatted: "f3"})

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get("query-0", "s")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get("query-3", "s")
	assert.True(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c := newResultsCache()
	c.Set("query", "s", cachedResult{Formatted: "f"})
	c.Clear()
	assert.Equal(t, 0, c.Len())
}
