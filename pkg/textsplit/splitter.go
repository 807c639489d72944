package textsplit

import (
	"strings"
	"unicode/utf8"
)

// DefaultSeparators is the preference cascade: paragraph, line, sentence,
// word, then single characters as the last resort.
var DefaultSeparators = []string{"\n\n", "\n", ".", " ", ""}

// Splitter splits long text into chunks of approximately ChunkSize characters
// with ChunkOverlap characters repeated between consecutive chunks. It tries
// each separator in order and only falls back to the next one for pieces that
// still exceed the size bound. Sizes are plain rune counts.
//
// Splitting is lossless: separators stay attached to the piece they end, so
// concatenating the chunks with overlaps removed reproduces the input exactly.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

func New(chunkSize, chunkOverlap int) *Splitter {
	return &Splitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		Separators:   DefaultSeparators,
	}
}

// Split returns the chunk sequence for text. Empty input yields no chunks.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	return s.merge(s.split(text, s.Separators))
}

// split breaks text into pieces no larger than ChunkSize, except when even
// single characters cannot help (a piece is only oversized if unsplittable).
func (s *Splitter) split(text string, seps []string) []string {
	if utf8.RuneCountInString(text) <= s.ChunkSize {
		return []string{text}
	}
	if len(seps) == 0 {
		return []string{text}
	}

	sep := seps[0]
	if sep == "" {
		return s.hardSplit(text)
	}

	parts := strings.SplitAfter(text, sep)
	if len(parts) == 1 {
		// Separator absent, try the next one.
		return s.split(text, seps[1:])
	}

	var pieces []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		if utf8.RuneCountInString(part) <= s.ChunkSize {
			pieces = append(pieces, part)
		} else {
			pieces = append(pieces, s.split(part, seps[1:])...)
		}
	}
	return pieces
}

// hardSplit slices text into ChunkSize rune windows.
func (s *Splitter) hardSplit(text string) []string {
	runes := []rune(text)
	var pieces []string
	for i := 0; i < len(runes); i += s.ChunkSize {
		end := i + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[i:end]))
	}
	return pieces
}

// merge greedily packs adjacent pieces into chunks up to ChunkSize, carrying
// up to ChunkOverlap trailing characters into the next chunk. The carried
// tail shrinks (down to nothing) when the next piece would not fit beside it.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var cur []string
	curLen := 0
	fresh := 0 // pieces in cur that are not carried overlap

	for _, p := range pieces {
		pl := utf8.RuneCountInString(p)
		if fresh > 0 && curLen+pl > s.ChunkSize {
			chunks = append(chunks, strings.Join(cur, ""))
			for len(cur) > 0 && (curLen > s.ChunkOverlap || curLen+pl > s.ChunkSize) {
				curLen -= utf8.RuneCountInString(cur[0])
				cur = cur[1:]
			}
			fresh = 0
		}
		cur = append(cur, p)
		curLen += pl
		fresh++
	}
	if fresh > 0 {
		chunks = append(chunks, strings.Join(cur, ""))
	}
	return chunks
}
