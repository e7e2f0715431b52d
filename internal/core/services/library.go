package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService manages the document library: listing, lookup, deletion,
// and centroid-index rebuilds. Mutations invalidate the decode caches in
// the same logical operation.
type LibraryService struct {
	store  driven.DocumentStore
	caches *Caches
}

// NewLibraryService creates a library service.
func NewLibraryService(store driven.DocumentStore, caches *Caches) *LibraryService {
	return &LibraryService{store: store, caches: caches}
}

// List returns all documents, newest first.
func (s *LibraryService) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// Get retrieves one document, or domain.ErrNotFound.
func (s *LibraryService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.store.GetDocumentByID(ctx, id)
}

// Delete removes a document with all its chunks and centroid entry, then
// invalidates the decode caches.
func (s *LibraryService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	s.caches.Clear()
	logger.Info("Deleted document %s", id)
	return nil
}

// RebuildIndex recomputes every document centroid from the persisted
// chunks and invalidates the decode caches.
func (s *LibraryService) RebuildIndex(ctx context.Context) error {
	logger.Section("Rebuild Index")
	if err := s.store.RebuildDocIndex(ctx); err != nil {
		return fmt.Errorf("rebuilding doc index: %w", err)
	}
	s.caches.Clear()
	logger.Info("Centroid index rebuilt")
	return nil
}
