package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// LibraryService manages the document library as a whole.
type LibraryService interface {
	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves one document, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes a document with all its chunks and its centroid
	// entry, and invalidates the decode caches.
	Delete(ctx context.Context, id string) error

	// RebuildIndex recomputes every document centroid from the persisted
	// chunks and invalidates the decode caches.
	RebuildIndex(ctx context.Context) error
}
