// Package openai provides an embedding service adapter using the OpenAI API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "text-embedding-3-small"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the OpenAI embedding service.
type Config struct {
	// Secrets resolves the API key at call time (required).
	Secrets driven.SecretStore

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the embedding model to use (default: text-embedding-3-small).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// EmbeddingService generates embeddings using the OpenAI API. The API key
// is looked up per call so a key stored after startup takes effect without
// a restart. Each call is single-shot; retry lives in the services layer.
type EmbeddingService struct {
	client  *http.Client
	secrets driven.SecretStore
	baseURL string
	model   string
}

// embeddingRequest is the OpenAI API request format.
type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// embeddingResponse is the OpenAI API response format.
type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// NewEmbeddingService creates a new OpenAI embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &EmbeddingService{
		client:  &http.Client{Timeout: cfg.Timeout},
		secrets: cfg.Secrets,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float64, error) {
	apiKey, err := s.secrets.Get(driven.SecretKeyOpenAI)
	if err != nil {
		return nil, fmt.Errorf("resolving API key: %w", err)
	}
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	jsonBody, err := json.Marshal(embeddingRequest{Model: s.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.baseURL+"/embeddings", bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &domain.APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var embedResp embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(embedResp.Data) == 0 {
		return nil, fmt.Errorf("openai: no embedding returned")
	}
	return embedResp.Data[0].Embedding, nil
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}
