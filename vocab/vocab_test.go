package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpusFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	sentences := writeCorpusFile(t, dir, "train.sentence",
		"Dogs run .\nCats sleep .\nDogs bark .\n")
	questions := writeCorpusFile(t, dir, "train.question",
		"What do dogs do ?\nWhat do cats do ?\n")

	v, err := Build([]string{sentences, questions}, 0)
	require.NoError(t, err)

	assert.Equal(t, PadToken, v.Word(0))
	assert.Equal(t, UnkToken, v.Word(1))
	assert.Equal(t, SOSToken, v.Word(2))
	assert.Equal(t, EOSToken, v.Word(3))

	// "do" appears 4 times, "." 3 times; frequency ranking puts the most
	// common corpus words right after the specials.
	assert.Equal(t, "do", v.Word(4))
	assert.Equal(t, ".", v.Word(5))

	assert.NotEqual(t, v.UnkID(), v.ID("Dogs"))
	assert.Equal(t, v.UnkID(), v.ID("zebra"))
}

func TestBuildMaxSize(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "train.answer", "a b c d e f g\n")

	v, err := Build([]string{path}, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, v.Size())
}

func TestEncodeDecode(t *testing.T) {
	v, err := New([]string{PadToken, UnkToken, SOSToken, EOSToken, "Dogs", "run", "."})
	require.NoError(t, err)

	ids := v.Encode([]string{"Dogs", "run", ".", "zebra"})
	assert.Equal(t, []int64{4, 5, 6, 1}, ids)

	words := v.Decode([]int64{2, 4, 5, 6, 3})
	assert.Equal(t, []string{"Dogs", "run", "."}, words)
}

func TestNewValidation(t *testing.T) {
	_, err := New([]string{"not", "special", "tokens", "first"})
	assert.Error(t, err)

	_, err = New([]string{PadToken, UnkToken})
	assert.Error(t, err)

	_, err = New([]string{PadToken, UnkToken, SOSToken, EOSToken, "dup", "dup"})
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	v, err := New([]string{PadToken, UnkToken, SOSToken, EOSToken, "Dogs", "run"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "vocab.json")
	require.NoError(t, v.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, v.Size(), loaded.Size())
	assert.Equal(t, v.ID("run"), loaded.ID("run"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("nonexistent/vocab.json")
	assert.Error(t, err)
}
