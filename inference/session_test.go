package inference

import (
	"os"
	"testing"
)

const testModelPath = "testdata/qa_model.onnx"

// skipIfNoModel skips the test if the exported ONNX model is not available.
func skipIfNoModel(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testModelPath); err != nil {
		t.Skipf("Skipping: ONNX model not available at %s", testModelPath)
	}
}

func TestNewSessionMissingModel(t *testing.T) {
	_, err := NewSession("nonexistent/model.onnx")
	if err == nil {
		t.Fatal("expected error for nonexistent model")
	}
}

func TestNewSession(t *testing.T) {
	skipIfNoModel(t)

	s, err := NewSession(testModelPath)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	// Closing twice is a no-op.
	if err := s.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}
