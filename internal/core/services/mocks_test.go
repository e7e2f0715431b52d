package services

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// stubEmbedder returns canned vectors keyed by exact input text. Unknown
// inputs get the fallback vector. An optional error script fails the first
// len(errs) calls in order.
type stubEmbedder struct {
	vectors  map[string][]float64
	fallback []float64
	errs     []error
	calls    []string
}

var _ driven.EmbeddingService = (*stubEmbedder)(nil)

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	n := len(s.calls)
	s.calls = append(s.calls, text)
	if n < len(s.errs) && s.errs[n] != nil {
		return nil, s.errs[n]
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	if s.fallback != nil {
		return s.fallback, nil
	}
	return []float64{1, 1}, nil
}

func (s *stubEmbedder) ModelName() string { return "stub-model" }

// stubExtractor returns a fixed text or error regardless of locator.
type stubExtractor struct {
	text string
	err  error
}

var _ driven.Extractor = (*stubExtractor)(nil)

func (s *stubExtractor) Extract(context.Context, string) (string, error) {
	return s.text, s.err
}
