package history

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestWindow_Empty(t *testing.T) {
	assert.Equal(t, "", Window("", 4000))
}

func TestWindow_ShortTranscriptUnchanged(t *testing.T) {
	transcript := "User: hello\nAssistant: hi there\n"
	assert.Equal(t, transcript, Window(transcript, 4000))
}

func TestWindow_LongTranscriptKeepsTail(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 400; i++ {
		b.WriteString("User: question about topic\nAssistant: a fairly long answer line\n")
	}
	transcript := b.String()

	got := Window(transcript, 4000)

	assert.NotEmpty(t, got)
	// Never more than two windows worth plus the joining space.
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 2*4000+1)
	// The tail of the transcript survives.
	assert.Contains(t, got, "Assistant: a fairly long answer line")
}
