package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// RetrievalService ranks stored chunks against a query.
type RetrievalService interface {
	// TopK returns up to k chunks ordered by descending cosine similarity
	// to the query embedding. Tie-break order for equal scores is
	// unspecified.
	TopK(ctx context.Context, query string, k int, opts domain.RetrieveOptions) ([]domain.RankedChunk, error)
}
