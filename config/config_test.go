package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "train-v2.0.json", cfg.Squad.TrainFile)
	assert.Equal(t, "combined-newsqa-data-v1.json", cfg.NewsQA.File)
	assert.Equal(t, int64(42), cfg.Output.Seed)
	assert.Equal(t, "one-per-answer", cfg.Output.AnswerPolicy)
	assert.Equal(t, "model.onnx", cfg.Model.Path)
	assert.Equal(t, "data/out/vocab.json", cfg.Model.VocabPath)
	assert.Equal(t, 45000, cfg.Model.VocabSize)
}

func TestLoadFile(t *testing.T) {
	content := `
squad:
  data_dir: /corpora/squad
output:
  dir: /corpora/out
  seed: 7
log:
  level: debug
`
	path := filepath.Join(t.TempDir(), "qaprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/corpora/squad", cfg.Squad.DataDir)
	assert.Equal(t, filepath.Join("/corpora/squad", "train-v2.0.json"), cfg.Squad.TrainPath())
	assert.Equal(t, int64(7), cfg.Output.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSlogLevelFallback(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: "bogus"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "WARN"}.SlogLevel())
}
