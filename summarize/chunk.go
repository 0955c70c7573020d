package summarize

import "strings"

// DefaultChunkSize bounds prompt size for the generative model.
const DefaultChunkSize = 4000

// Chunk splits text into an ordered sequence of pieces of at most maxLen
// runes, preferring to cut just after the rightmost sentence terminator ('.')
// at or before the limit. When no terminator exists before the limit it cuts
// hard at maxLen. Pieces are trimmed at the boundaries; concatenating them
// reproduces the original text minus that boundary whitespace. No piece is
// empty except the single piece returned for a wholly empty input.
//
// Pure function of (text, maxLen): no I/O, deterministic, cannot fail.
func Chunk(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultChunkSize
	}

	var chunks []string
	remaining := []rune(text)
	for len(remaining) > maxLen {
		cut := maxLen
		for i := maxLen - 1; i >= 0; i-- {
			if remaining[i] == '.' {
				cut = i + 1 // keep the terminator with the chunk
				break
			}
		}
		chunks = append(chunks, strings.TrimSpace(string(remaining[:cut])))
		remaining = []rune(strings.TrimSpace(string(remaining[cut:])))
	}
	last := strings.TrimSpace(string(remaining))
	if last != "" || len(chunks) == 0 {
		chunks = append(chunks, last)
	}
	return chunks
}
