package prompt

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"rag-chat-be/internal/constant"
	"rag-chat-be/pkg/llm"
)

// ChainComposer answers in two model calls: first it condenses the follow-up
// question against its own per-user exchange memory into a standalone
// question, then it answers that question grounded in the retrieved context.
// Its memory is separate from the shared conversation buffer because the
// chain needs question/answer pairs in its own layout.
type ChainComposer struct {
	llmProvider llm.LLMProvider

	mu        sync.Mutex
	exchanges map[string][]string
}

func NewChainComposer(llmProvider llm.LLMProvider) *ChainComposer {
	return &ChainComposer{
		llmProvider: llmProvider,
		exchanges:   make(map[string][]string),
	}
}

func (c *ChainComposer) Answer(ctx context.Context, userID string, query Query) (string, error) {
	question := query.Text

	if chainHistory := c.historyFor(userID); chainHistory != "" {
		condensed, err := c.llmProvider.Generate(ctx,
			fmt.Sprintf(constant.CondenseStandalonePrompt, chainHistory, query.Text))
		if err != nil {
			return "", fmt.Errorf("condense step failed: %w", err)
		}
		if condensed = strings.TrimSpace(condensed); condensed != "" {
			question = condensed
		}
	}

	answer, err := c.llmProvider.Generate(ctx,
		fmt.Sprintf(constant.ChainContextQAPrompt, ContextBlock(query.Chunks), question))
	if err != nil {
		return "", err
	}

	c.record(userID, query.Text, answer)
	return answer, nil
}

func (c *ChainComposer) historyFor(userID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.exchanges[userID], "")
}

func (c *ChainComposer) record(userID, question, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := fmt.Sprintf("Human: %s\nAssistant: %s\n", question, strings.ReplaceAll(answer, "\n", " "))
	c.exchanges[userID] = append(c.exchanges[userID], entry)
}
