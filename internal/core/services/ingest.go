package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
	"github.com/custodia-labs/docchat/internal/segment"
)

// maxExtractedBytes caps extracted text at 10 MiB. Oversized documents are
// rejected outright, never truncated.
const maxExtractedBytes = 10 << 20

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the extraction, segmentation, embedding, and
// persistence pipeline for one document at a time.
type IngestService struct {
	store      driven.DocumentStore
	embedder   driven.EmbeddingService
	extractors map[domain.DocType]driven.Extractor
	caches     *Caches

	targetSize int
	overlap    int

	now   func() time.Time
	newID func() string
}

// NewIngestService creates an ingestion service using the default chunking
// parameters. The embedder is expected to carry its own retry and pacing
// policy (see Embedder).
func NewIngestService(
	store driven.DocumentStore,
	embedder driven.EmbeddingService,
	extractors map[domain.DocType]driven.Extractor,
	caches *Caches,
) *IngestService {
	return &IngestService{
		store:      store,
		embedder:   embedder,
		extractors: extractors,
		caches:     caches,
		targetSize: segment.DefaultTargetSize,
		overlap:    segment.DefaultOverlap,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// SetChunkParams overrides the segmentation window. Out-of-range values
// are ignored.
func (s *IngestService) SetChunkParams(targetSize, overlap int) {
	if targetSize > 0 {
		s.targetSize = targetSize
	}
	if overlap >= 0 {
		s.overlap = overlap
	}
}

// Ingest processes one document end to end: extract, validate, segment,
// persist the document row, embed and persist each chunk strictly
// sequentially while accumulating a running vector sum, then finalize the
// chunk count and centroid and invalidate the decode caches.
//
// If an embedding call fails mid-loop, already-inserted chunks and the
// document row are left in place: a partial ingestion stays discoverable
// rather than silently vanishing.
func (s *IngestService) Ingest(
	ctx context.Context, title string, docType domain.DocType, locator string, declaredSize int64,
) (*driving.IngestResult, error) {
	logger.Section("Ingest")
	logger.Debug("Title: %q, type: %s, locator: %s", title, docType, locator)

	if !docType.Valid() {
		return nil, fmt.Errorf("ingest: %w: %q", domain.ErrUnsupportedType, docType)
	}
	extractor, ok := s.extractors[docType]
	if !ok {
		return nil, fmt.Errorf("ingest: %w: no extractor for %q", domain.ErrUnsupportedType, docType)
	}

	text, err := extractor.Extract(ctx, locator)
	if err != nil {
		return nil, fmt.Errorf("extracting %q: %w", title, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("ingest %q: %w", title, domain.ErrEmptyExtract)
	}
	if len(text) > maxExtractedBytes {
		return nil, fmt.Errorf("ingest %q: %w (%d bytes)", title, domain.ErrDocumentTooLarge, len(text))
	}

	chunks := segment.Split(text, s.targetSize, s.overlap)
	logger.Debug("Segmented %d bytes into %d chunks", len(text), len(chunks))

	size := declaredSize
	if size <= 0 {
		size = int64(len(text))
	}
	doc := domain.Document{
		ID:    s.newID(),
		Title: title,
		Size:  size,
		Date:  s.now().UnixMilli(),
		Type:  docType,
	}
	// The document row goes in before any embedding call so a later
	// failure still leaves a discoverable, if incomplete, document.
	if err := s.store.InsertDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}

	var sum []float64
	for i, content := range chunks {
		vec, err := s.embedder.Embed(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d/%d of %q: %w", i+1, len(chunks), title, err)
		}
		chunk := domain.Chunk{
			ID:         s.newID(),
			DocumentID: doc.ID,
			Seq:        i,
			Content:    content,
			Embedding:  domain.EncodeVector(vec),
		}
		if err := s.store.InsertChunk(ctx, chunk); err != nil {
			return nil, fmt.Errorf("inserting chunk %d: %w", i, err)
		}

		if sum == nil {
			sum = make([]float64, len(vec))
		}
		for j := 0; j < len(sum) && j < len(vec); j++ {
			sum[j] += vec[j]
		}
		logger.Debug("Chunk %d/%d embedded and stored", i+1, len(chunks))
	}

	n := len(chunks)
	if err := s.store.UpdateDocumentChunkCount(ctx, doc.ID, n); err != nil {
		return nil, fmt.Errorf("updating chunk count: %w", err)
	}
	centroid := make([]float64, len(sum))
	for j, v := range sum {
		centroid[j] = v / float64(n)
	}
	if err := s.store.UpsertDocCentroid(ctx, doc.ID, domain.EncodeVector(centroid), n); err != nil {
		return nil, fmt.Errorf("upserting centroid: %w", err)
	}

	s.caches.Clear()
	logger.Info("Ingested %q: %d chunks", title, n)
	return &driving.IngestResult{DocumentID: doc.ID, ChunkCount: n}, nil
}
