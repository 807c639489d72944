package memory

import (
	"github.com/patrickmn/go-cache"

	"rag-chat-be/pkg/store"
)

// ConversationRepository keeps one dialogue buffer per user identity for the
// lifetime of the warm process. It is a best-effort cache over the call log,
// never the source of truth. Concurrent same-user appends are not serialized;
// last-write-wins ordering is the documented behavior.
type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	// Buffers never expire on their own; they die with the process.
	c := cache.New(cache.NoExpiration, 0)
	return &ConversationRepository{
		cache: c,
	}
}

// GetOrCreate returns the user's buffer, creating an empty one on first use.
func (r *ConversationRepository) GetOrCreate(userID string) *store.Conversation {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Conversation)
	}
	conv := &store.Conversation{UserID: userID}
	r.cache.Set(userID, conv, cache.NoExpiration)
	return conv
}

// Append records a question/answer turn on the user's buffer.
func (r *ConversationRepository) Append(userID, question, answer string) {
	r.GetOrCreate(userID).Append(question, answer)
}

// Replay appends previously persisted turns onto the buffer. Replaying turns
// that are already present duplicates them; that tolerance is accepted, the
// durable log stays authoritative.
func (r *ConversationRepository) Replay(userID string, turns []store.Turn) {
	conv := r.GetOrCreate(userID)
	for _, t := range turns {
		conv.Append(t.Question, t.Answer)
	}
}

// Delete drops a user's buffer. Mostly useful in tests.
func (r *ConversationRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
