package services

import (
	"github.com/custodia-labs/docchat/internal/cache"
)

// Caches bundles the two decode caches, one for chunk embeddings and one
// for document centroids. A single pair is constructed at startup and
// shared by the ingestion, retrieval, and library services so that an
// invalidation is seen by every reader. No module-level state.
type Caches struct {
	Chunks    *cache.VectorCache
	Centroids *cache.VectorCache
}

// NewCaches creates both caches at their default capacity.
func NewCaches() *Caches {
	return &Caches{
		Chunks:    cache.New(cache.DefaultMaxEntries),
		Centroids: cache.New(cache.DefaultMaxEntries),
	}
}

// Clear invalidates both caches. Must be called after any store mutation
// that touches chunk or centroid data.
func (c *Caches) Clear() {
	c.Chunks.Clear()
	c.Centroids.Clear()
}
