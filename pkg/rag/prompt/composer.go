package prompt

import (
	"context"

	"rag-chat-be/pkg/store"
)

// Query is everything a composer may use to build a prompt. History is the
// already-windowed transcript, Chunks the retrieval results; either may be
// empty. Korean selects the template language.
type Query struct {
	Text    string
	History string
	Chunks  []store.DocumentChunk
	Korean  bool
}

// Composer turns a query into a model answer. Implementations choose their
// own prompt layout and may make more than one model call per answer.
type Composer interface {
	Answer(ctx context.Context, userID string, query Query) (string, error)
}
