// Package cache provides a bounded memoization cache for decoding
// serialized embedding vectors.
package cache

import (
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// DefaultMaxEntries is the default cache capacity.
const DefaultMaxEntries = 1000

// VectorCache maps serialized vector payloads to their decoded form so a
// retrieval pass decodes each stored embedding at most once. When full it
// evicts the oldest fifth of its entries in insertion order (batch
// approximate-FIFO, not LRU).
//
// The cache is not safe for concurrent use; the engine is single-writer
// and request-driven. Invalidation is explicit via Clear, never automatic.
type VectorCache struct {
	max     int
	order   []string
	entries map[string][]float64
}

// New creates a cache holding at most max entries. Non-positive max uses
// DefaultMaxEntries.
func New(max int) *VectorCache {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &VectorCache{
		max:     max,
		entries: make(map[string][]float64),
	}
}

// Get returns the decoded vector for serialized, decoding and caching it
// on a miss.
func (c *VectorCache) Get(serialized string) ([]float64, error) {
	if v, ok := c.entries[serialized]; ok {
		return v, nil
	}

	v, err := domain.DecodeVector(serialized)
	if err != nil {
		return nil, err
	}

	if len(c.entries) >= c.max {
		c.evictOldest()
	}
	c.entries[serialized] = v
	c.order = append(c.order, serialized)
	return v, nil
}

// evictOldest drops the oldest 20% of entries in insertion order.
func (c *VectorCache) evictOldest() {
	n := c.max / 5
	if n < 1 {
		n = 1
	}
	if n > len(c.order) {
		n = len(c.order)
	}
	for _, key := range c.order[:n] {
		delete(c.entries, key)
	}
	c.order = c.order[n:]
}

// Len returns the number of cached entries.
func (c *VectorCache) Len() int {
	return len(c.entries)
}

// Clear drops every entry. Called whenever the underlying chunk or
// centroid data changes.
func (c *VectorCache) Clear() {
	c.order = nil
	c.entries = make(map[string][]float64)
}
