// Package driving provides interfaces for use-case entry points
// (primary/inbound ports) consumed by the CLI and MCP adapters.
package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// IngestResult reports what a completed ingestion produced.
type IngestResult struct {
	// DocumentID is the id of the newly created document.
	DocumentID string

	// ChunkCount is the number of chunks embedded and persisted.
	ChunkCount int
}

// IngestService runs the extraction, segmentation, embedding, and
// persistence pipeline for one document.
type IngestService interface {
	// Ingest processes the source behind locator as the given type.
	// On a mid-pipeline embedding failure, the document row and any
	// already-persisted chunks are deliberately left in place so the
	// partial ingestion stays discoverable.
	Ingest(ctx context.Context, title string, docType domain.DocType, locator string, declaredSize int64) (*IngestResult, error)
}
