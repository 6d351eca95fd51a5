package tokenizer

import (
	"errors"
	"fmt"
)

// ErrTokenNotFound indicates a token could not be located in its source text.
// It means the tokenizer and the text have desynchronized; offsets derived
// from such a passage would be corrupt, so callers must treat it as fatal.
var ErrTokenNotFound = errors.New("tokenizer: token not found in text")

// Span marks a token's exact [Start,End) location in normalized text, in
// rune offsets.
type Span struct {
	Start int
	End   int
}

// IndexSpans maps each token to its span in text. Tokens must appear in
// order; the scan cursor only ever moves forward.
func IndexSpans(text string, tokens []string) ([]Span, error) {
	runes := []rune(text)
	spans := make([]Span, 0, len(tokens))
	cursor := 0

	for _, token := range tokens {
		tr := []rune(token)
		at := indexRunes(runes, tr, cursor)
		if at < 0 {
			return nil, fmt.Errorf("%w: %q from offset %d", ErrTokenNotFound, token, cursor)
		}
		spans = append(spans, Span{Start: at, End: at + len(tr)})
		cursor = at + len(tr)
	}

	return spans, nil
}

// SentenceStarts returns the starting rune offset of each sentence by walking
// the span list with per-sentence token counts. Sentences must partition the
// token sequence the spans were computed from.
func SentenceStarts(spans []Span, sentences [][]string) []int {
	starts := make([]int, 0, len(sentences))
	n := 0
	for _, sentence := range sentences {
		if n >= len(spans) {
			break
		}
		starts = append(starts, spans[n].Start)
		n += len(sentence)
	}
	return starts
}

// indexRunes finds needle in haystack at or after from, returning the rune
// index or -1.
func indexRunes(haystack, needle []rune, from int) int {
	if len(needle) == 0 || from < 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		found := true
		for j, r := range needle {
			if haystack[i+j] != r {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}
