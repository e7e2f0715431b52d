package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// defaultTopK is the result count when the caller passes k <= 0.
const defaultTopK = 3

// minShortlist is the floor on the centroid-stage shortlist size.
const minShortlist = 10

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService ranks stored chunks against a query in two stages:
// documents are shortlisted by centroid similarity first, then only the
// chunks of shortlisted documents are scored exactly. When no centroids
// exist the engine degrades to a single-stage scan over every eligible
// chunk, which yields identical results since no narrowing occurs.
type RetrievalService struct {
	store    driven.DocumentStore
	embedder driven.EmbeddingService
	caches   *Caches
}

// NewRetrievalService creates a retrieval service.
func NewRetrievalService(store driven.DocumentStore, embedder driven.EmbeddingService, caches *Caches) *RetrievalService {
	return &RetrievalService{store: store, embedder: embedder, caches: caches}
}

// TopK returns up to k chunks ordered by descending cosine similarity to
// the query embedding. An empty query returns no results without calling
// the embedding service.
func (s *RetrievalService) TopK(
	ctx context.Context, query string, k int, opts domain.RetrieveOptions,
) ([]domain.RankedChunk, error) {
	logger.Section("Retrieve")
	logger.Debug("Query: %q, k: %d", query, k)

	if k <= 0 {
		k = defaultTopK
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.RankedChunk{}, nil
	}

	qvec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	filter := opts.Filter()
	centroids, err := s.store.CentroidsForFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("loading centroids: %w", err)
	}

	// Stage one: shortlist documents by centroid similarity. A nil
	// shortlist means every document is eligible.
	var shortlist map[string]struct{}
	if len(centroids) > 0 {
		type docScore struct {
			id    string
			score float64
		}
		scored := make([]docScore, 0, len(centroids))
		for _, c := range centroids {
			vec, err := s.caches.Centroids.Get(c.Centroid)
			if err != nil {
				return nil, fmt.Errorf("decoding centroid of %s: %w", c.DocumentID, err)
			}
			scored = append(scored, docScore{c.DocumentID, domain.Cosine(qvec, vec)})
		}
		sort.Slice(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

		limit := k * 5
		if limit < minShortlist {
			limit = minShortlist
		}
		if limit > len(scored) {
			limit = len(scored)
		}
		shortlist = make(map[string]struct{}, limit)
		for _, ds := range scored[:limit] {
			shortlist[ds.id] = struct{}{}
		}
		logger.Debug("Shortlisted %d of %d documents", limit, len(scored))
	} else {
		logger.Debug("Centroid index empty, single-stage scan")
	}

	candidates, err := s.store.SearchChunks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}

	// Stage two: restrict to the shortlist, cap the pool, score exactly.
	pool := make([]domain.ChunkWithDoc, 0, len(candidates))
	for _, ch := range candidates {
		if shortlist != nil {
			if _, ok := shortlist[ch.DocumentID]; !ok {
				continue
			}
		}
		pool = append(pool, ch)
		if opts.MaxChunksToScan > 0 && len(pool) >= opts.MaxChunksToScan {
			break
		}
	}
	logger.Debug("Scoring %d of %d candidate chunks", len(pool), len(candidates))

	ranked := make([]domain.RankedChunk, 0, len(pool))
	for _, ch := range pool {
		vec, err := s.caches.Chunks.Get(ch.Embedding)
		if err != nil {
			return nil, fmt.Errorf("decoding embedding of chunk %s: %w", ch.ID, err)
		}
		ranked = append(ranked, domain.RankedChunk{ChunkWithDoc: ch, Score: domain.Cosine(qvec, vec)})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}
