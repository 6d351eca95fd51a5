package tokenizer

import (
	"strings"
	"unicode"
)

// Normalize cleans raw corpus text before tokenization. Every substitution
// is rune-for-rune, so answer offsets annotated against the raw text remain
// valid in the normalized text. Unrecognized runes pass through unchanged.
//
// Newlines survive normalization: NewsQA articles use them as structure that
// the extractors clean up themselves.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		b.WriteRune(normalizeRune(r))
	}
	return b.String()
}

func normalizeRune(r rune) rune {
	switch r {
	case '\n':
		return '\n'
	case '‘', '’', '‚', 'ʼ':
		return '\''
	case '“', '”', '„':
		return '"'
	case '–', '—':
		return '-'
	}

	switch {
	case unicode.IsSpace(r):
		return ' '
	case unicode.IsControl(r):
		return ' '
	}
	return r
}
