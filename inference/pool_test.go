package inference

import (
	"testing"
)

func TestNewPoolMissingModel(t *testing.T) {
	_, err := NewPool("nonexistent/model.onnx", 2)
	if err == nil {
		t.Fatal("expected error for nonexistent model")
	}
}

func TestNewPoolSizeClamped(t *testing.T) {
	// Construction fails on the missing model either way; this only checks
	// that a non-positive size does not panic before that.
	if _, err := NewPool("nonexistent/model.onnx", 0); err == nil {
		t.Fatal("expected error for nonexistent model")
	}
	if _, err := NewPool("nonexistent/model.onnx", -3); err == nil {
		t.Fatal("expected error for nonexistent model")
	}
}
