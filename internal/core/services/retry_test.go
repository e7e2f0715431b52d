package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func TestRetryDecisionClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"429", &domain.APIError{Status: 429, Body: "slow down"}, true},
		{"500", &domain.APIError{Status: 500, Body: "oops"}, true},
		{"503", &domain.APIError{Status: 503, Body: "unavailable"}, true},
		{"599", &domain.APIError{Status: 599, Body: "edge"}, true},
		{"400", &domain.APIError{Status: 400, Body: "bad request"}, false},
		{"401", &domain.APIError{Status: 401, Body: "unauthorized"}, false},
		{"rate limit message", errors.New("Rate Limit exceeded, try later"), true},
		{"missing key", domain.ErrMissingAPIKey, false},
		{"generic", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retry, _ := RetryDecision(0, tt.err)
			assert.Equal(t, tt.retryable, retry)
		})
	}
}

func TestRetryDecisionExhaustion(t *testing.T) {
	err := &domain.APIError{Status: 429, Body: "slow down"}

	for attempt := 0; attempt < embedMaxRetries; attempt++ {
		retry, _ := RetryDecision(attempt, err)
		assert.True(t, retry, "attempt %d should retry", attempt)
	}
	retry, delay := RetryDecision(embedMaxRetries, err)
	assert.False(t, retry)
	assert.Zero(t, delay)
}

func TestRetryDecisionDelayBounds(t *testing.T) {
	err := &domain.APIError{Status: 500, Body: "oops"}

	// Base delays double per attempt and cap at 1500ms; jitter adds less
	// than 120ms on top.
	wantBase := []time.Duration{
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1500 * time.Millisecond,
	}
	for attempt, base := range wantBase {
		_, delay := RetryDecision(attempt, err)
		assert.GreaterOrEqual(t, delay, base, "attempt %d", attempt)
		assert.Less(t, delay, base+embedJitterMax, "attempt %d", attempt)
	}
}

func TestRetryDecisionNilError(t *testing.T) {
	retry, delay := RetryDecision(0, nil)
	assert.False(t, retry)
	assert.Zero(t, delay)
}
