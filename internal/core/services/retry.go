package services

import (
	"errors"
	"math/rand"
	"net/http"
	"regexp"
	"time"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

const (
	// embedMaxRetries is the number of additional attempts after the first.
	embedMaxRetries = 4

	embedBaseDelay = 200 * time.Millisecond
	embedMaxDelay  = 1500 * time.Millisecond
	embedJitterMax = 120 * time.Millisecond

	// embedPaceEvery is the fixed pause applied after every successful
	// embedding call to avoid bursting the external quota.
	embedPaceEvery = 150 * time.Millisecond
)

var rateLimitPattern = regexp.MustCompile(`(?i)rate limit`)

// RetryDecision reports whether a failed embedding attempt should be
// retried and, if so, how long to wait first. attempt is zero-based: the
// delay for attempt n is min(1500ms, 200ms<<n) plus jitter in [0, 120ms).
//
// An error is retryable iff it is an APIError with status 429 or in
// [500, 600), or its message mentions a rate limit. Anything else,
// including a missing API key, propagates immediately.
func RetryDecision(attempt int, err error) (bool, time.Duration) {
	if err == nil || attempt >= embedMaxRetries || !retryableEmbedError(err) {
		return false, 0
	}
	delay := embedBaseDelay << attempt
	if delay > embedMaxDelay {
		delay = embedMaxDelay
	}
	jitter := time.Duration(rand.Int63n(int64(embedJitterMax)))
	return true, delay + jitter
}

func retryableEmbedError(err error) bool {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusTooManyRequests {
			return true
		}
		if apiErr.Status >= 500 && apiErr.Status < 600 {
			return true
		}
	}
	return rateLimitPattern.MatchString(err.Error())
}
