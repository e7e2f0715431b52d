package driven

import "context"

// ChatService answers a question grounded in retrieved context chunks via
// an external text-completion call. Only the fact of the call matters to
// the engine; prompt formatting belongs to the adapter.
type ChatService interface {
	// Answer produces a completion for question using contextChunks.
	Answer(ctx context.Context, question string, contextChunks []string) (string, error)
}
