package mcp

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results []domain.RankedChunk
	err     error

	lastQuery string
	lastK     int
	lastOpts  domain.RetrieveOptions
}

func (m *mockRetrievalService) TopK(
	_ context.Context,
	query string,
	k int,
	opts domain.RetrieveOptions,
) ([]domain.RankedChunk, error) {
	m.lastQuery = query
	m.lastK = k
	m.lastOpts = opts
	return m.results, m.err
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	documents []domain.Document
	document  *domain.Document
	err       error
}

func (m *mockLibraryService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockLibraryService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockLibraryService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) RebuildIndex(_ context.Context) error {
	return m.err
}
