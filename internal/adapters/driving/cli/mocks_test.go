package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct{}

func (m *mockIngestService) Ingest(
	_ context.Context,
	_ string,
	_ domain.DocType,
	_ string,
	_ int64,
) (*driving.IngestResult, error) {
	return &driving.IngestResult{DocumentID: "doc-1", ChunkCount: 3}, nil
}

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct{}

func (m *mockRetrievalService) TopK(
	_ context.Context,
	_ string,
	_ int,
	_ domain.RetrieveOptions,
) ([]domain.RankedChunk, error) {
	return []domain.RankedChunk{
		{
			ChunkWithDoc: domain.ChunkWithDoc{
				Chunk: domain.Chunk{
					ID:         "chunk-1",
					DocumentID: "doc-1",
					Seq:        0,
					Content:    "mock chunk content",
				},
				DocType: domain.DocTypeText,
			},
			Score: 0.9,
		},
	}, nil
}

// mockRetrievalServiceError always fails.
type mockRetrievalServiceError struct{}

func (m *mockRetrievalServiceError) TopK(
	_ context.Context,
	_ string,
	_ int,
	_ domain.RetrieveOptions,
) ([]domain.RankedChunk, error) {
	return nil, errors.New("embedding unavailable")
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct{}

func (m *mockLibraryService) List(_ context.Context) ([]domain.Document, error) {
	return []domain.Document{
		{
			ID:         "doc-1",
			Title:      "Mock Document",
			Size:       128,
			ChunkCount: 3,
			Date:       1700000000000,
			Type:       domain.DocTypeText,
		},
	}, nil
}

func (m *mockLibraryService) Get(_ context.Context, id string) (*domain.Document, error) {
	if id != "doc-1" {
		return nil, domain.ErrNotFound
	}
	return &domain.Document{ID: "doc-1", Title: "Mock Document"}, nil
}

func (m *mockLibraryService) Delete(_ context.Context, _ string) error {
	return nil
}

func (m *mockLibraryService) RebuildIndex(_ context.Context) error {
	return nil
}

// mockLibraryServiceEmpty returns no documents.
type mockLibraryServiceEmpty struct {
	mockLibraryService
}

func (m *mockLibraryServiceEmpty) List(_ context.Context) ([]domain.Document, error) {
	return nil, nil
}

// mockChatService is a mock implementation of driven.ChatService.
type mockChatService struct{}

func (m *mockChatService) Answer(_ context.Context, _ string, _ []string) (string, error) {
	return "mock answer", nil
}

// mockSecretStore is an in-memory driven.SecretStore.
type mockSecretStore struct {
	values map[string]string
}

func (m *mockSecretStore) Get(key string) (string, error) {
	return m.values[key], nil
}

func (m *mockSecretStore) Set(key, value string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func (m *mockSecretStore) Delete(key string) error {
	delete(m.values, key)
	return nil
}

// setupTestServices injects mock services and returns a cleanup function
// restoring the previous ones.
func setupTestServices() func() {
	oldIngest := ingestService
	oldRetrieval := retrievalService
	oldLibrary := libraryService
	oldChat := chatService
	oldSecrets := secretStore

	SetServices(Services{
		Ingest:    &mockIngestService{},
		Retrieval: &mockRetrievalService{},
		Library:   &mockLibraryService{},
		Chat:      &mockChatService{},
		Secrets:   &mockSecretStore{},
	})

	return func() {
		ingestService = oldIngest
		retrievalService = oldRetrieval
		libraryService = oldLibrary
		chatService = oldChat
		secretStore = oldSecrets
	}
}
