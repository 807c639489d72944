package prompt

import (
	"fmt"
	"strings"

	"rag-chat-be/internal/constant"
	"rag-chat-be/pkg/store"
)

// BareWrap frames raw text with the human/assistant markers. Used when there
// is no history and no context to build anything richer from.
func BareWrap(text string) string {
	return constant.HumanPrompt + text + constant.AIPrompt
}

// ContextBlock joins chunk texts for injection into a QA template.
func ContextBlock(chunks []store.DocumentChunk) string {
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	return strings.Join(texts, "\n\n")
}

// BuildContextQA renders the single-shot QA prompt used when conversation
// mode is off but retrieval produced context.
func BuildContextQA(chunks []store.DocumentChunk, question string, korean bool) string {
	tmpl := constant.ContextQAPromptEN
	if korean {
		tmpl = constant.ContextQAPromptKO
	}
	return fmt.Sprintf(tmpl, ContextBlock(chunks), question)
}

// ReferenceTrailer renders the source attribution appended to an answer when
// references are enabled. Chunks keep their retrieval order.
func ReferenceTrailer(chunks []store.DocumentChunk) string {
	if len(chunks) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nFrom\n")
	for _, c := range chunks {
		b.WriteString(fmt.Sprintf("%dpage in %s\n", c.Ordinal, c.Name))
	}
	return b.String()
}
