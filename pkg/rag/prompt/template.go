package prompt

import (
	"context"
	"fmt"
	"strings"

	"rag-chat-be/internal/constant"
	"rag-chat-be/pkg/llm"
)

// TemplateComposer answers in a single model call. Retrieved chunks are
// spliced into the history block as extra user lines so the condense template
// treats them as things the user already said.
type TemplateComposer struct {
	llmProvider llm.LLMProvider
}

func NewTemplateComposer(llmProvider llm.LLMProvider) *TemplateComposer {
	return &TemplateComposer{
		llmProvider: llmProvider,
	}
}

func (c *TemplateComposer) Answer(ctx context.Context, userID string, query Query) (string, error) {
	// No history means no condense template; retrieved chunks, if any, are
	// discarded until the dialogue has at least one turn.
	if query.History == "" {
		return c.llmProvider.Generate(ctx, BareWrap(query.Text))
	}

	var pseudo strings.Builder
	pseudo.WriteString(query.History)
	for _, chunk := range query.Chunks {
		pseudo.WriteString("\nUser: ")
		pseudo.WriteString(chunk.Text)
	}

	tmpl := constant.CondenseWithHistoryPromptEN
	if query.Korean {
		tmpl = constant.CondenseWithHistoryPromptKO
	}
	return c.llmProvider.Generate(ctx, fmt.Sprintf(tmpl, pseudo.String(), query.Text))
}
