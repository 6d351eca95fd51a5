// Package tokenizer provides the word tokenizer and sentence splitter used by
// the corpus preprocessing pipeline, plus the span indexing that maps tokens
// back to character offsets.
//
// All offsets are rune offsets, matching the convention of the QA corpora
// whose answer annotations are code-point indices into the passage text.
package tokenizer

import (
	"regexp"
	"strings"
)

// wordRe matches a word (with internal hyphens/underscores), an ellipsis or
// double dash, or a single non-space character, so punctuation becomes its
// own token. Word characters are any Unicode letter or digit, not just
// ASCII, since the corpora are full of accented names.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+(?:[-_][\p{L}\p{N}_]+)*|\.\.\.|--|\S`)

// Common abbreviations that shouldn't end sentences.
var abbrevRe = regexp.MustCompile(`(?i)\b(Mr|Mrs|Ms|Dr|Prof|Sr|Jr|vs|etc|i\.e|e\.g|U\.S|U\.K)\.$`)

// Tokenizer is the default word tokenizer and sentence splitter. The zero
// value is ready to use and safe for concurrent use.
type Tokenizer struct{}

// Normalize implements the text cleaning contract. See Normalize.
func (Tokenizer) Normalize(text string) string { return Normalize(text) }

// Words implements the word tokenization contract. See Words.
func (Tokenizer) Words(text string) []string { return Words(text) }

// Sentences implements the sentence splitting contract. See Sentences.
func (Tokenizer) Sentences(text string) [][]string { return Sentences(text) }

// Words splits text into word tokens in order of appearance.
func Words(text string) []string {
	return wordRe.FindAllString(text, -1)
}

// Sentences splits text into per-sentence token groups. Concatenating the
// groups yields exactly Words(text), so token counts can be used to walk
// sentence boundaries through a span list.
func Sentences(text string) [][]string {
	var groups [][]string
	for _, seg := range splitSentences(text) {
		tokens := Words(seg)
		if len(tokens) == 0 {
			continue
		}
		groups = append(groups, tokens)
	}
	return groups
}

// splitSentences cuts text at sentence-ending punctuation followed by a space,
// newline, or end of text, guarding against common abbreviations.
func splitSentences(text string) []string {
	if text == "" {
		return nil
	}

	var segments []string
	start := 0

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch != '.' && ch != '?' && ch != '!' {
			continue
		}

		isEnd := i == len(text)-1 || text[i+1] == ' ' || text[i+1] == '\n'
		if !isEnd {
			continue
		}

		candidate := text[start : i+1]
		if ch == '.' && abbrevRe.MatchString(candidate) {
			continue
		}

		segments = append(segments, candidate)

		// Skip whitespace to the next sentence start.
		for i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\n') {
			i++
		}
		start = i + 1
	}

	if start < len(text) {
		remaining := text[start:]
		if strings.TrimSpace(remaining) != "" {
			segments = append(segments, remaining)
		}
	}

	return segments
}
