package mcp

import (
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval ranks chunks against a query.
	Retrieval driving.RetrievalService

	// Library lists and inspects documents. Optional; the list_documents
	// tool is only registered when it is set.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
