package dataset

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSplitFile(t *testing.T, dir, split, suffix string) []string {
	t.Helper()
	data, err := os.ReadFile(SplitFile(dir, split, suffix))
	require.NoError(t, err)
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestWriter(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir, "train")
	require.NoError(t, err)

	require.NoError(t, w.WriteTriple(
		[]string{"Dogs", "run", "."},
		[]string{"What", "do", "dogs", "do", "?"},
		[]string{"run"},
	))
	require.NoError(t, w.Emit(Example{
		Sentence: []string{"Cats", "sleep", "."},
		Question: []string{"What", "do", "cats", "do", "?"},
		Answer:   []string{"sleep"},
	}))
	assert.Equal(t, 2, w.Count())
	require.NoError(t, w.Close())

	sentences := readSplitFile(t, dir, "train", SuffixSentence)
	questions := readSplitFile(t, dir, "train", SuffixQuestion)
	answers := readSplitFile(t, dir, "train", SuffixAnswer)

	require.Len(t, sentences, 2)
	require.Len(t, questions, 2)
	require.Len(t, answers, 2)

	assert.Equal(t, "Dogs run .", sentences[0])
	assert.Equal(t, "What do dogs do ?", questions[0])
	assert.Equal(t, "run", answers[0])
	assert.Equal(t, "Cats sleep .", sentences[1])
	assert.Equal(t, "sleep", answers[1])
}

func TestWriterCreatesSplitDir(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir, "dev")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	info, err := os.Stat(SplitFile(dir, "dev", SuffixSentence))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}
