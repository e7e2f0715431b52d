package driven

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// DocumentStore persists documents, chunks, and the per-document centroid
// index. Backed by SQLite. Write operations are synchronous; callers are
// responsible for invalidating any decode caches after a mutation.
type DocumentStore interface {
	// InsertDocument stores a document, replacing any existing row with the
	// same id.
	InsertDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocumentChunkCount sets the chunk count of a document.
	UpdateDocumentChunkCount(ctx context.Context, id string, n int) error

	// InsertChunk stores a chunk, replacing any existing row with the same id.
	InsertChunk(ctx context.Context, chunk domain.Chunk) error

	// ListDocuments returns all documents ordered by descending date.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// GetDocumentByID retrieves a document, or domain.ErrNotFound.
	GetDocumentByID(ctx context.Context, id string) (*domain.Document, error)

	// DeleteDocument removes the document, all its chunks, and its centroid
	// index entry in a single transaction. Deleting an unknown id is not an
	// error.
	DeleteDocument(ctx context.Context, id string) error

	// ChunksForDocument returns a document's chunks in insertion order.
	ChunksForDocument(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// SearchChunks returns chunks joined with parent document metadata for
	// every document passing the filter, ordered by descending document
	// date. Filter.Limit caps the row count when positive.
	SearchChunks(ctx context.Context, filter domain.SearchFilter) ([]domain.ChunkWithDoc, error)

	// UpsertDocCentroid stores or replaces a document's centroid entry.
	UpsertDocCentroid(ctx context.Context, documentID, centroid string, chunkCount int) error

	// DeleteDocCentroid removes a document's centroid entry.
	DeleteDocCentroid(ctx context.Context, documentID string) error

	// CentroidsForFilter returns centroid entries whose parent document
	// passes the filter, ordered by descending document date.
	CentroidsForFilter(ctx context.Context, filter domain.SearchFilter) ([]domain.DocCentroid, error)

	// RebuildDocIndex recomputes every document's centroid from its
	// persisted chunk embeddings, replacing the whole index. Used to
	// backfill libraries created before the centroid index existed.
	RebuildDocIndex(ctx context.Context) error
}
