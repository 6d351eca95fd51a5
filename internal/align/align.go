// Package align verifies the aligned-corpus invariant and gathers per-split
// statistics for reporting.
package align

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jamesainslie/go-qaprep/dataset"
)

// Stats summarizes one split of an aligned corpus.
type Stats struct {
	Examples       int
	EmptyAnswers   int
	SentenceTokens int
	QuestionTokens int
	AnswerTokens   int
}

// MeanSentenceLen returns the average sentence length in tokens.
func (s Stats) MeanSentenceLen() float64 {
	if s.Examples == 0 {
		return 0
	}
	return float64(s.SentenceTokens) / float64(s.Examples)
}

// MeanQuestionLen returns the average question length in tokens.
func (s Stats) MeanQuestionLen() float64 {
	if s.Examples == 0 {
		return 0
	}
	return float64(s.QuestionTokens) / float64(s.Examples)
}

// MeanAnswerLen returns the average answer length in tokens.
func (s Stats) MeanAnswerLen() float64 {
	if s.Examples == 0 {
		return 0
	}
	return float64(s.AnswerTokens) / float64(s.Examples)
}

type fileStats struct {
	lines  int
	tokens int
	empty  int
}

// Verify checks that a split's three aligned files have the same number of
// lines and returns its statistics. A count mismatch means the corpus is
// misaligned and unusable for training.
func Verify(dir, split string) (Stats, error) {
	var per [3]fileStats
	suffixes := []string{dataset.SuffixSentence, dataset.SuffixQuestion, dataset.SuffixAnswer}

	for i, suffix := range suffixes {
		fs, err := scanFile(dataset.SplitFile(dir, split, suffix))
		if err != nil {
			return Stats{}, err
		}
		per[i] = fs
	}

	if per[0].lines != per[1].lines || per[0].lines != per[2].lines {
		return Stats{}, fmt.Errorf("align: split %q misaligned: %d sentences, %d questions, %d answers",
			split, per[0].lines, per[1].lines, per[2].lines)
	}

	return Stats{
		Examples:       per[0].lines,
		EmptyAnswers:   per[2].empty,
		SentenceTokens: per[0].tokens,
		QuestionTokens: per[1].tokens,
		AnswerTokens:   per[2].tokens,
	}, nil
}

func scanFile(path string) (fileStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileStats{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var fs fileStats
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		fs.lines++
		n := len(strings.Fields(scanner.Text()))
		fs.tokens += n
		if n == 0 {
			fs.empty++
		}
	}
	if err := scanner.Err(); err != nil {
		return fileStats{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return fs, nil
}
