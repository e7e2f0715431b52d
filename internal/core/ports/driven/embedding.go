// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
package driven

import "context"

// EmbeddingService generates a vector embedding for one text via an
// external model call.
//
// Failure contract: domain.ErrMissingAPIKey when no credential is
// available, *domain.APIError carrying status and body on a non-success
// response. Retry and pacing live above this interface, in the services
// layer, so implementations stay single-shot.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
