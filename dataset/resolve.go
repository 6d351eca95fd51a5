package dataset

import (
	"errors"
	"fmt"
)

// ErrSentenceNotFound indicates no sentence in the passage contains the
// answer's start offset.
var ErrSentenceNotFound = errors.New("dataset: no sentence contains the answer offset")

// ResolveSentence finds the supporting sentence for an answer starting at
// answerStart: the last sentence whose start offset is at or before it. The
// scan stops at the first sentence starting past the answer.
func ResolveSentence(answerStart int, sentStarts []int, sentences [][]string) ([]string, error) {
	found := -1
	for i, start := range sentStarts {
		if answerStart >= start {
			found = i
		} else {
			break
		}
	}

	if found < 0 || found >= len(sentences) || len(sentences[found]) == 0 {
		return nil, fmt.Errorf("%w: answer start %d, %d sentences", ErrSentenceNotFound, answerStart, len(sentences))
	}
	return sentences[found], nil
}
