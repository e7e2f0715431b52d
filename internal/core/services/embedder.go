package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure Embedder implements the interface.
var _ driven.EmbeddingService = (*Embedder)(nil)

// Embedder decorates an EmbeddingService with the retry and pacing policy
// every caller of the external embedding API must observe. Ingestion and
// retrieval embed through this wrapper, never the raw adapter.
type Embedder struct {
	svc     driven.EmbeddingService
	limiter *rate.Limiter
	sleep   func(context.Context, time.Duration) error
}

// NewEmbedder wraps svc with retry and post-success pacing.
func NewEmbedder(svc driven.EmbeddingService) *Embedder {
	limiter := rate.NewLimiter(rate.Every(embedPaceEvery), 1)
	// Drain the initial token so the first post-success wait still paces.
	limiter.Allow()
	return &Embedder{svc: svc, limiter: limiter, sleep: sleepCtx}
}

// Embed calls the underlying service with up to embedMaxRetries additional
// attempts on retryable failures, then pauses for the pacing interval
// after a success. After exhausting retries the last error propagates.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	for attempt := 0; ; attempt++ {
		vec, err := e.svc.Embed(ctx, text)
		if err == nil {
			if werr := e.limiter.Wait(ctx); werr != nil {
				return nil, werr
			}
			return vec, nil
		}

		retry, delay := RetryDecision(attempt, err)
		if !retry {
			return nil, err
		}
		logger.Warn("Embedding attempt %d failed, retrying in %s: %v", attempt+1, delay, err)
		if serr := e.sleep(ctx, delay); serr != nil {
			return nil, serr
		}
	}
}

// ModelName returns the underlying service's model name.
func (e *Embedder) ModelName() string {
	return e.svc.ModelName()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
