package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query     string `json:"query" jsonschema:"the text to search the library for"`
	K         int    `json:"k,omitempty" jsonschema:"number of chunks to return (default 3)"`
	DocType   string `json:"doc_type,omitempty" jsonschema:"restrict to one document type: text, pdf, or image"`
	DateStart int64  `json:"date_start,omitempty" jsonschema:"only documents created at or after this epoch-millisecond timestamp"`
	DateEnd   int64  `json:"date_end,omitempty" jsonschema:"only documents created at or before this epoch-millisecond timestamp"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieved chunk.
type SearchResultOutput struct {
	DocumentID string  `json:"document_id"`
	ChunkID    string  `json:"chunk_id"`
	Seq        int     `json:"seq"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
	DocType    string  `json:"doc_type"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents one library document.
type DocumentOutput struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Size       int64  `json:"size"`
	ChunkCount int    `json:"chunk_count"`
	Date       int64  `json:"date"`
	Type       string `json:"type"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the local document library by semantic similarity",
	}, s.handleSearch)

	if s.ports.Library != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_documents",
			Description: "List all documents in the local library",
		}, s.handleListDocuments)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.RetrieveOptions{
		DocType:   domain.DocType(input.DocType),
		DateStart: input.DateStart,
		DateEnd:   input.DateEnd,
	}

	results, err := s.ports.Retrieval.TopK(ctx, input.Query, input.K, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID: results[i].DocumentID,
			ChunkID:    results[i].ID,
			Seq:        results[i].Seq,
			Content:    results[i].Content,
			Score:      results[i].Score,
			DocType:    string(results[i].DocType),
		}
	}
	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i, doc := range docs {
		output.Documents[i] = DocumentOutput{
			ID:         doc.ID,
			Title:      doc.Title,
			Size:       doc.Size,
			ChunkCount: doc.ChunkCount,
			Date:       doc.Date,
			Type:       string(doc.Type),
		}
	}
	return nil, output, nil
}
