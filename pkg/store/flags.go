package store

import "sync"

// Flags holds the process-wide chat behavior toggles. They are deliberately
// shared configuration state, not per-user: a control command on a warm
// process changes behavior for every request that process serves afterwards.
type Flags struct {
	mu               sync.RWMutex
	reference        bool
	conversationMode bool
	rag              bool
}

func NewFlags(reference, conversationMode, rag bool) *Flags {
	return &Flags{
		reference:        reference,
		conversationMode: conversationMode,
		rag:              rag,
	}
}

func (f *Flags) Reference() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.reference
}

func (f *Flags) SetReference(v bool) {
	f.mu.Lock()
	f.reference = v
	f.mu.Unlock()
}

func (f *Flags) ConversationMode() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.conversationMode
}

func (f *Flags) SetConversationMode(v bool) {
	f.mu.Lock()
	f.conversationMode = v
	f.mu.Unlock()
}

func (f *Flags) RAG() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.rag
}

func (f *Flags) SetRAG(v bool) {
	f.mu.Lock()
	f.rag = v
	f.mu.Unlock()
}
