package align

import (
	"os"
	"testing"

	"github.com/jamesainslie/go-qaprep/dataset"
)

func writeSplit(t *testing.T, dir string, triples [][3][]string) {
	t.Helper()
	w, err := dataset.NewWriter(dir, "train")
	if err != nil {
		t.Fatalf("NewWriter() failed: %v", err)
	}
	for _, tr := range triples {
		if err := w.WriteTriple(tr[0], tr[1], tr[2]); err != nil {
			t.Fatalf("WriteTriple() failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, [][3][]string{
		{{"Dogs", "run", "."}, {"What", "runs", "?"}, {"Dogs"}},
		{{"Cats", "sleep", "."}, {"Who", "sleeps", "?"}, {}},
	})

	stats, err := Verify(dir, "train")
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}

	if stats.Examples != 2 {
		t.Errorf("Examples = %d, want 2", stats.Examples)
	}
	if stats.SentenceTokens != 6 {
		t.Errorf("SentenceTokens = %d, want 6", stats.SentenceTokens)
	}
	if stats.EmptyAnswers != 1 {
		t.Errorf("EmptyAnswers = %d, want 1", stats.EmptyAnswers)
	}
	if got := stats.MeanSentenceLen(); got != 3.0 {
		t.Errorf("MeanSentenceLen() = %v, want 3.0", got)
	}
}

func TestVerifyMisaligned(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, [][3][]string{
		{{"Dogs", "run", "."}, {"What", "runs", "?"}, {"Dogs"}},
	})

	f, err := os.OpenFile(dataset.SplitFile(dir, "train", dataset.SuffixQuestion), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("opening question file: %v", err)
	}
	if _, err := f.WriteString("stray question ?\n"); err != nil {
		t.Fatalf("appending: %v", err)
	}
	_ = f.Close()

	if _, err := Verify(dir, "train"); err == nil {
		t.Fatal("expected error for misaligned split")
	}
}

func TestVerifyMissingFile(t *testing.T) {
	if _, err := Verify(t.TempDir(), "train"); err == nil {
		t.Fatal("expected error for missing files")
	}
}
