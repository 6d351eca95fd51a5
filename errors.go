package qaprep

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the ONNX model file does not exist.
	ErrModelNotFound = errors.New("qaprep: model file not found")

	// ErrInvalidModel indicates the model file exists but is malformed.
	ErrInvalidModel = errors.New("qaprep: invalid model format")

	// ErrVocabNotFound indicates the vocabulary file does not exist.
	ErrVocabNotFound = errors.New("qaprep: vocabulary file not found")
)
