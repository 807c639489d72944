package store

// DocumentChunk is a bounded text segment produced by splitting an uploaded
// document. Chunks are copied by value into query contexts, never shared by
// mutable reference.
type DocumentChunk struct {
	Name    string  `json:"name"`    // source document name
	Ordinal int     `json:"ordinal"` // page number (pdf/txt) or row number (csv), 1-based
	Text    string  `json:"text"`
	Score   float32 `json:"score,omitempty"` // similarity score when returned from search
}
