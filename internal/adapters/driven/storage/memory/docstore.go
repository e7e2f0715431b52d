// Package memory provides in-memory adapter implementations for testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure DocStore implements the interface.
var _ driven.DocumentStore = (*DocStore)(nil)

// DocStore is an in-memory implementation of driven.DocumentStore for
// testing. Ordering and filter semantics match the SQLite adapter.
type DocStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string]domain.Chunk
	chunkSeq  map[string]int // chunk id -> global insertion index
	nextSeq   int
	centroids map[string]domain.DocCentroid
}

// NewDocStore creates a new in-memory document store.
func NewDocStore() *DocStore {
	return &DocStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string]domain.Chunk),
		chunkSeq:  make(map[string]int),
		centroids: make(map[string]domain.DocCentroid),
	}
}

// InsertDocument stores a document, replacing any existing row with the
// same id.
func (s *DocStore) InsertDocument(_ context.Context, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = doc
	return nil
}

// UpdateDocumentChunkCount sets the chunk count of a document.
func (s *DocStore) UpdateDocumentChunkCount(_ context.Context, id string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.ChunkCount = n
	s.documents[id] = doc
	return nil
}

// InsertChunk stores a chunk, replacing any existing row with the same id.
func (s *DocStore) InsertChunk(_ context.Context, chunk domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.chunks[chunk.ID]; !exists {
		s.chunkSeq[chunk.ID] = s.nextSeq
		s.nextSeq++
	}
	s.chunks[chunk.ID] = chunk
	return nil
}

// ListDocuments returns all documents ordered by descending date.
func (s *DocStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Date > docs[j].Date })
	return docs, nil
}

// GetDocumentByID retrieves a document, or domain.ErrNotFound.
func (s *DocStore) GetDocumentByID(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// DeleteDocument removes the document, all its chunks, and its centroid
// entry. Deleting an unknown id is not an error.
func (s *DocStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for chunkID, chunk := range s.chunks {
		if chunk.DocumentID == id {
			delete(s.chunks, chunkID)
			delete(s.chunkSeq, chunkID)
		}
	}
	delete(s.centroids, id)
	delete(s.documents, id)
	return nil
}

// ChunksForDocument returns a document's chunks in insertion order.
func (s *DocStore) ChunksForDocument(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var chunks []domain.Chunk
	for _, chunk := range s.chunks {
		if chunk.DocumentID == documentID {
			chunks = append(chunks, chunk)
		}
	}
	sort.Slice(chunks, func(i, j int) bool {
		return s.chunkSeq[chunks[i].ID] < s.chunkSeq[chunks[j].ID]
	})
	return chunks, nil
}

// SearchChunks returns chunks joined with parent document metadata for
// every document passing the filter, ordered by descending document date.
func (s *DocStore) SearchChunks(_ context.Context, filter domain.SearchFilter) ([]domain.ChunkWithDoc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []domain.ChunkWithDoc
	for _, chunk := range s.chunks {
		doc, ok := s.documents[chunk.DocumentID]
		if !ok || !filter.MatchesDocument(doc) {
			continue
		}
		results = append(results, domain.ChunkWithDoc{
			Chunk:   chunk,
			DocDate: doc.Date,
			DocType: doc.Type,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].DocDate != results[j].DocDate {
			return results[i].DocDate > results[j].DocDate
		}
		return s.chunkSeq[results[i].ID] < s.chunkSeq[results[j].ID]
	})
	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}
	return results, nil
}

// UpsertDocCentroid stores or replaces a document's centroid entry.
func (s *DocStore) UpsertDocCentroid(_ context.Context, documentID, centroid string, chunkCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centroids[documentID] = domain.DocCentroid{
		DocumentID: documentID,
		Centroid:   centroid,
		ChunkCount: chunkCount,
	}
	return nil
}

// DeleteDocCentroid removes a document's centroid entry.
func (s *DocStore) DeleteDocCentroid(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.centroids, documentID)
	return nil
}

// CentroidsForFilter returns centroid entries whose parent document passes
// the filter, ordered by descending document date.
func (s *DocStore) CentroidsForFilter(_ context.Context, filter domain.SearchFilter) ([]domain.DocCentroid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type entry struct {
		centroid domain.DocCentroid
		date     int64
	}
	var entries []entry
	for docID, centroid := range s.centroids {
		doc, ok := s.documents[docID]
		if !ok || !filter.MatchesDocument(doc) {
			continue
		}
		entries = append(entries, entry{centroid, doc.Date})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].date > entries[j].date })
	results := make([]domain.DocCentroid, 0, len(entries))
	for _, e := range entries {
		results = append(results, e.centroid)
	}
	return results, nil
}

// RebuildDocIndex recomputes every document's centroid from its persisted
// chunk embeddings, replacing the whole index.
func (s *DocStore) RebuildDocIndex(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centroids = make(map[string]domain.DocCentroid)
	for docID := range s.documents {
		var sum []float64
		n := 0
		for _, chunk := range s.chunks {
			if chunk.DocumentID != docID {
				continue
			}
			vec, err := domain.DecodeVector(chunk.Embedding)
			if err != nil {
				return err
			}
			if sum == nil {
				sum = make([]float64, len(vec))
			}
			for j := 0; j < len(sum) && j < len(vec); j++ {
				sum[j] += vec[j]
			}
			n++
		}
		if n == 0 {
			continue
		}
		centroid := make([]float64, len(sum))
		for j, v := range sum {
			centroid[j] = v / float64(n)
		}
		s.centroids[docID] = domain.DocCentroid{
			DocumentID: docID,
			Centroid:   domain.EncodeVector(centroid),
			ChunkCount: n,
		}
	}
	return nil
}
