// Package openai provides chat-completion adapters using the OpenAI API:
// the RAG answer call and the vision OCR call used by the image extractor.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure ChatService implements the interface.
var _ driven.ChatService = (*ChatService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the OpenAI chat service.
type Config struct {
	// Secrets resolves the API key at call time (required).
	Secrets driven.SecretStore

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	BaseURL string

	// Model is the chat model to use (default: gpt-4o).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// ChatService answers questions and performs OCR through the OpenAI chat
// completions endpoint.
type ChatService struct {
	client  *http.Client
	secrets driven.SecretStore
	baseURL string
	model   string
}

// chatMessage is one entry of the messages array. Content is either a
// plain string or a multimodal part list.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// chatRequest is the chat completions request format.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the chat completions response format.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewChatService creates a new OpenAI chat service.
func NewChatService(cfg Config) *ChatService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &ChatService{
		client:  &http.Client{Timeout: cfg.Timeout},
		secrets: cfg.Secrets,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}
}

// Answer produces a completion for question grounded in contextChunks.
func (s *ChatService) Answer(ctx context.Context, question string, contextChunks []string) (string, error) {
	var sb strings.Builder
	sb.WriteString("You are a helpful assistant. Use the supplied CONTEXT when relevant.\n")
	sb.WriteString("If information isn't in CONTEXT, say you don't know.\nCONTEXT:\n")
	for i, chunk := range contextChunks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[%d] %s", i+1, chunk)
	}

	return s.complete(ctx, chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: sb.String()},
			{Role: "user", Content: question},
		},
		Temperature: 0.2,
	})
}

// OCRImage extracts the visible text of an image via the vision model.
func (s *ChatService) OCRImage(ctx context.Context, image []byte) (string, error) {
	dataURI := "data:image/*;base64," + base64.StdEncoding.EncodeToString(image)
	return s.complete(ctx, chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: []any{
				map[string]any{
					"type": "text",
					"text": "Extract and return the complete visible text from this image.",
				},
				map[string]any{
					"type":      "image_url",
					"image_url": map[string]any{"url": dataURI},
				},
			}},
		},
		Temperature: 0,
	})
}

func (s *ChatService) complete(ctx context.Context, reqBody chatRequest) (string, error) {
	apiKey, err := s.secrets.Get(driven.SecretKeyOpenAI)
	if err != nil {
		return "", fmt.Errorf("resolving API key: %w", err)
	}
	if apiKey == "" {
		return "", domain.ErrMissingAPIKey
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &domain.APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai: no completion returned")
	}
	return chatResp.Choices[0].Message.Content, nil
}
