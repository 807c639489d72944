package store

import "strings"

// Turn is one question/answer exchange. Turns are immutable once appended.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Conversation is the volatile per-user dialogue buffer. It lives only for
// the process lifetime; the call log is the durable source of truth.
type Conversation struct {
	UserID string `json:"user_id"`
	Turns  []Turn `json:"turns"`
}

// Append records a new turn. Newlines in the answer are normalized to spaces
// so a turn always flattens to single-line history entries.
func (c *Conversation) Append(question, answer string) {
	c.Turns = append(c.Turns, Turn{
		Question: question,
		Answer:   strings.ReplaceAll(answer, "\n", " "),
	})
}

// Flatten renders the buffer as prompt-ready history text. Turn boundaries
// are kept structurally in Turns; this is only the presentation form.
func (c *Conversation) Flatten() string {
	if len(c.Turns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range c.Turns {
		b.WriteString("User: ")
		b.WriteString(t.Question)
		b.WriteString("\nAssistant: ")
		b.WriteString(t.Answer)
		b.WriteString("\n")
	}
	return b.String()
}
