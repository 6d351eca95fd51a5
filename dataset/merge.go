package dataset

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// Merge concatenates one split's aligned files from each source directory, in
// order, and writes the shuffled result under outDir. A single permutation is
// generated from rng and applied identically to all three files; shuffling
// them with independent randomness would silently break the line-for-line
// correspondence between them.
func Merge(srcDirs []string, split, outDir string, rng *rand.Rand) error {
	var lines [3][]string
	for i, suffix := range suffixes {
		for _, dir := range srcDirs {
			path := SplitFile(dir, split, suffix)
			fileLines, err := readLines(path)
			if err != nil {
				return err
			}
			lines[i] = append(lines[i], fileLines...)
		}
	}

	n := len(lines[0])
	if len(lines[1]) != n || len(lines[2]) != n {
		return fmt.Errorf("dataset: aligned files out of step for split %q: %d sentences, %d questions, %d answers",
			split, n, len(lines[1]), len(lines[2]))
	}

	perm := rng.Perm(n)

	subDir := filepath.Join(outDir, split)
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", subDir, err)
	}
	for i, suffix := range suffixes {
		if err := writePermuted(SplitFile(outDir, split, suffix), lines[i], perm); err != nil {
			return err
		}
	}
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	// Sentence lines can exceed the default scanner buffer for long passages.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

func writePermuted(path string, lines []string, perm []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, idx := range perm {
		if _, err := w.WriteString(lines[idx]); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}
