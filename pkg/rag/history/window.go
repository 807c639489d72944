package history

import (
	"strings"

	"rag-chat-be/pkg/textsplit"
)

// Window trims a flattened conversation transcript down to its most recent
// portion. The transcript is chunked with no overlap at maxChars and the last
// two chunks are joined with a space, so the model always sees the tail of the
// dialogue regardless of how long it has grown.
func Window(transcript string, maxChars int) string {
	splitter := textsplit.New(maxChars, 0)
	chunks := splitter.Split(transcript)

	switch len(chunks) {
	case 0:
		return ""
	case 1:
		return chunks[0]
	default:
		return strings.Join(chunks[len(chunks)-2:], " ")
	}
}
