package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Suffixes of the three aligned corpus files of a split.
const (
	SuffixSentence = "sentence"
	SuffixQuestion = "question"
	SuffixAnswer   = "answer"
)

var suffixes = [3]string{SuffixSentence, SuffixQuestion, SuffixAnswer}

// Suffixes returns the three aligned file suffixes in writer order.
func Suffixes() []string { return suffixes[:] }

// SplitFile returns the path of one aligned file: <dir>/<split>/<split>.<suffix>.
func SplitFile(dir, split, suffix string) string {
	return filepath.Join(dir, split, split+"."+suffix)
}

// Writer appends aligned example triples to a split's three parallel files.
// Line N of the sentence, question, and answer file always belongs to the
// same example because WriteTriple writes all three lines before returning.
type Writer struct {
	files [3]*os.File
	bufs  [3]*bufio.Writer
	count int
}

// NewWriter creates <dir>/<split>/ if absent and opens the three aligned
// files for writing, truncating existing ones.
func NewWriter(dir, split string) (*Writer, error) {
	subDir := filepath.Join(dir, split)
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", subDir, err)
	}

	w := &Writer{}
	for i, suffix := range suffixes {
		path := SplitFile(dir, split, suffix)
		f, err := os.Create(path)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("creating %s: %w", path, err)
		}
		w.files[i] = f
		w.bufs[i] = bufio.NewWriter(f)
	}
	return w, nil
}

// WriteTriple appends one space-joined, newline-terminated line per file.
func (w *Writer) WriteTriple(sentence, question, answer []string) error {
	lines := [3][]string{sentence, question, answer}
	for i, buf := range w.bufs {
		if _, err := buf.WriteString(strings.Join(lines[i], " ")); err != nil {
			return fmt.Errorf("writing %s line: %w", suffixes[i], err)
		}
		if err := buf.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing %s line: %w", suffixes[i], err)
		}
	}
	w.count++
	return nil
}

// Emit adapts the writer to the extractor EmitFunc signature.
func (w *Writer) Emit(ex Example) error {
	return w.WriteTriple(ex.Sentence, ex.Question, ex.Answer)
}

// Count returns the number of triples written.
func (w *Writer) Count() int { return w.count }

// Close flushes and closes all three files.
func (w *Writer) Close() error {
	var errs []error
	for i := range suffixes {
		if w.bufs[i] != nil {
			if err := w.bufs[i].Flush(); err != nil {
				errs = append(errs, err)
			}
		}
		if w.files[i] != nil {
			if err := w.files[i].Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
