package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// fastEmbedder returns an Embedder whose pacing and backoff sleeps are
// instant, recording requested sleep durations.
func fastEmbedder(svc *stubEmbedder) (*Embedder, *[]time.Duration) {
	e := NewEmbedder(svc)
	e.limiter = rate.NewLimiter(rate.Inf, 1)
	var slept []time.Duration
	e.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return e, &slept
}

func TestEmbedderRetriesRetryableErrors(t *testing.T) {
	svc := &stubEmbedder{
		fallback: []float64{1, 2},
		errs: []error{
			&domain.APIError{Status: 429, Body: "slow down"},
			&domain.APIError{Status: 503, Body: "unavailable"},
		},
	}
	e, slept := fastEmbedder(svc)

	vec, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, vec)
	assert.Len(t, svc.calls, 3)
	require.Len(t, *slept, 2)
	assert.GreaterOrEqual(t, (*slept)[0], 200*time.Millisecond)
	assert.GreaterOrEqual(t, (*slept)[1], 400*time.Millisecond)
}

func TestEmbedderDoesNotRetryFatalErrors(t *testing.T) {
	svc := &stubEmbedder{
		errs: []error{domain.ErrMissingAPIKey},
	}
	e, slept := fastEmbedder(svc)

	_, err := e.Embed(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	assert.Len(t, svc.calls, 1)
	assert.Empty(t, *slept)
}

func TestEmbedderExhaustsRetries(t *testing.T) {
	last := &domain.APIError{Status: 500, Body: "final"}
	svc := &stubEmbedder{
		errs: []error{
			&domain.APIError{Status: 500, Body: "1"},
			&domain.APIError{Status: 500, Body: "2"},
			&domain.APIError{Status: 500, Body: "3"},
			&domain.APIError{Status: 500, Body: "4"},
			last,
		},
	}
	e, slept := fastEmbedder(svc)

	_, err := e.Embed(context.Background(), "hello")
	require.Error(t, err)
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "final", apiErr.Body)
	// First attempt plus four retries.
	assert.Len(t, svc.calls, 5)
	assert.Len(t, *slept, 4)
}

func TestEmbedderPacesAfterSuccess(t *testing.T) {
	svc := &stubEmbedder{fallback: []float64{1}}
	e := NewEmbedder(svc)

	start := time.Now()
	_, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestEmbedderModelNamePassthrough(t *testing.T) {
	e := NewEmbedder(&stubEmbedder{})
	assert.Equal(t, "stub-model", e.ModelName())
}
