package ingestion

import (
	"fmt"
	"strings"
)

// Chunk is one sliding-window segment of an article's text. Index is the
// zero-based position within the article.
type Chunk struct {
	Index int
	Text  string
}

// SplitText splits text into overlapping fixed-size segments. Segment i
// covers character offsets [i*(size-overlap), i*(size-overlap)+size) clipped
// to the text length; the window advances by size-overlap until its start
// reaches the end. Offsets are counted in runes, segments are trimmed of
// surrounding whitespace. Empty input yields no chunks. overlap must be
// smaller than size; anything else is a configuration error.
func SplitText(text string, size, overlap int) ([]Chunk, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap %d must be in [0, %d)", overlap, size)
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	step := size - overlap
	var chunks []Chunk
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  strings.TrimSpace(string(runes[start:end])),
		})
	}
	return chunks, nil
}
