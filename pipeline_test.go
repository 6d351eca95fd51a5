package qaprep

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesainslie/go-qaprep/config"
	"github.com/jamesainslie/go-qaprep/internal/align"
	"github.com/jamesainslie/go-qaprep/vocab"
)

const squadFixture = `{
  "data": [
    {
      "title": "Animals",
      "paragraphs": [
        {
          "context": "Cats sleep. Dogs run.",
          "qas": [
            {
              "id": "q1",
              "question": "What do dogs do?",
              "answers": [{"text": "run", "answer_start": 17}]
            }
          ]
        }
      ]
    }
  ]
}`

const newsqaFixture = `{
  "data": [
    {
      "storyId": "cnn-train",
      "type": "train",
      "text": "(CNN) -- Officials said today that cats sleep. Dogs run everywhere.",
      "questions": [
        {
          "q": "What did officials do?",
          "isQuestionBad": 0,
          "consensus": {"s": 19, "e": 23}
        }
      ]
    },
    {
      "storyId": "cnn-dev",
      "type": "dev",
      "text": "(CNN) -- Officials said today that cats sleep. Dogs run everywhere.",
      "questions": [
        {
          "q": "What runs everywhere?",
          "isQuestionBad": 0,
          "consensus": {"s": 47, "e": 55}
        }
      ]
    }
  ]
}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	squadDir := t.TempDir()
	newsqaDir := t.TempDir()

	writeFixture(t, squadDir, "train-v2.0.json", squadFixture)
	writeFixture(t, squadDir, "dev-v2.0.json", squadFixture)
	writeFixture(t, newsqaDir, "combined-newsqa-data-v1.json", newsqaFixture)

	return &config.Config{
		Squad: config.SquadConfig{
			DataDir:   squadDir,
			TrainFile: "train-v2.0.json",
			DevFile:   "dev-v2.0.json",
		},
		NewsQA: config.NewsQAConfig{
			DataDir: newsqaDir,
			File:    "combined-newsqa-data-v1.json",
		},
		Output: config.OutputConfig{
			Dir:          t.TempDir(),
			Seed:         1,
			AnswerPolicy: "one-per-answer",
		},
	}
}

func TestPipelineRun(t *testing.T) {
	cfg := testConfig(t)

	pipe, err := NewPipeline(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewPipeline() failed: %v", err)
	}
	if err := pipe.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	// Each split merges one SQuAD and one NewsQA example.
	for _, split := range []string{"train", "dev"} {
		stats, err := align.Verify(cfg.Output.Dir, split)
		if err != nil {
			t.Fatalf("Verify(%s) failed: %v", split, err)
		}
		if stats.Examples != 2 {
			t.Errorf("merged %s examples = %d, want 2", split, stats.Examples)
		}
	}

	// Per-corpus aligned files remain alongside the inputs.
	if _, err := align.Verify(cfg.Squad.DataDir, "train"); err != nil {
		t.Errorf("squad train verify failed: %v", err)
	}
	if _, err := align.Verify(cfg.NewsQA.DataDir, "dev"); err != nil {
		t.Errorf("newsqa dev verify failed: %v", err)
	}
}

func TestPipelineMergeDeterminism(t *testing.T) {
	cfg := testConfig(t)

	pipe, err := NewPipeline(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewPipeline() failed: %v", err)
	}
	if err := pipe.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "train", "train.sentence"))
	if err != nil {
		t.Fatalf("reading merged file: %v", err)
	}

	// Re-merging with the same seed reproduces the same order.
	if err := pipe.MergeSplits(context.Background()); err != nil {
		t.Fatalf("MergeSplits() failed: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "train", "train.sentence"))
	if err != nil {
		t.Fatalf("reading merged file: %v", err)
	}

	if string(first) != string(second) {
		t.Error("same seed produced different merge order")
	}
}

func TestPipelineBuildVocab(t *testing.T) {
	cfg := testConfig(t)
	cfg.Model.VocabPath = filepath.Join(t.TempDir(), "vocab.json")
	cfg.Model.VocabSize = 100

	pipe, err := NewPipeline(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewPipeline() failed: %v", err)
	}
	if err := pipe.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if err := pipe.BuildVocab(context.Background()); err != nil {
		t.Fatalf("BuildVocab() failed: %v", err)
	}

	v, err := vocab.Load(cfg.Model.VocabPath)
	if err != nil {
		t.Fatalf("loading built vocabulary: %v", err)
	}
	// Words from the merged train split must be in vocabulary.
	for _, word := range []string{"Dogs", "run", "?"} {
		if v.ID(word) == v.UnkID() {
			t.Errorf("word %q missing from vocabulary", word)
		}
	}
}

func TestPipelineBuildVocabNoPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Model.VocabPath = ""

	pipe, err := NewPipeline(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewPipeline() failed: %v", err)
	}
	if err := pipe.BuildVocab(context.Background()); err == nil {
		t.Error("expected error for empty vocabulary path")
	}
}

func TestNewPipelineValidation(t *testing.T) {
	if _, err := NewPipeline(nil); err == nil {
		t.Error("expected error for nil config")
	}

	cfg := &config.Config{}
	cfg.Output.AnswerPolicy = "bogus"
	if _, err := NewPipeline(cfg); err == nil {
		t.Error("expected error for unknown answer policy")
	}
}
