package retriever

import (
	"context"

	"rag-chat-be/pkg/store"
)

// Scope narrows a similarity search to one user's corpus. RequestID is set
// when the caller wants chunks from a single ingested document only.
type Scope struct {
	UserID    string
	RequestID string
}

// Retriever answers top-k similarity queries over ingested document chunks.
// Ready reports whether the scope has anything searchable at all; callers use
// it to skip retrieval instead of composing a prompt with zero context.
// Volatile reports whether the index dies with the process: a volatile index
// that is not Ready means the corpus has not been rebuilt yet, which callers
// treat differently from a persistent index that is merely empty.
type Retriever interface {
	Index(ctx context.Context, scope Scope, chunks []store.DocumentChunk) error
	Search(ctx context.Context, scope Scope, query string, topK int) ([]store.DocumentChunk, error)
	Ready(ctx context.Context, scope Scope) bool
	Volatile() bool
}
