// Package inference provides ONNX Runtime integration for the exported
// question-answering encoder/decoder model.
package inference

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// initORT initializes the ONNX Runtime environment once per process.
func initORT() error {
	ortEnvOnce.Do(func() {
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// Session wraps an ONNX Runtime session for one decode step of the QA model.
// The model takes the encoded passage/question sequence and the decoder
// prefix, and produces logits over the vocabulary for every decoder position.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates an ONNX session from an exported model file.
func NewSession(modelPath string) (*Session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }()

	// Input/output names fixed by the model export.
	inputNames := []string{"input_ids", "decoder_input_ids"}
	outputNames := []string{"logits"}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		inputNames,
		outputNames,
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Infer runs one decode step and returns the vocabulary logits for the final
// decoder position.
func (s *Session) Infer(ctx context.Context, inputIDs, decoderIDs []int64) ([]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if len(inputIDs) == 0 || len(decoderIDs) == 0 {
		return nil, fmt.Errorf("empty input sequence")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("session is closed")
	}

	batchSize := int64(1)

	inputTensor, err := ort.NewTensor(
		ort.NewShape(batchSize, int64(len(inputIDs))),
		inputIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("creating input_ids tensor: %w", err)
	}
	defer func() { _ = inputTensor.Destroy() }()

	decoderTensor, err := ort.NewTensor(
		ort.NewShape(batchSize, int64(len(decoderIDs))),
		decoderIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("creating decoder_input_ids tensor: %w", err)
	}
	defer func() { _ = decoderTensor.Destroy() }()

	inputs := []ort.Value{inputTensor, decoderTensor}

	// Output entry is nil so Run allocates it.
	outputs := []ort.Value{nil}

	if err := s.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}

	if outputs[0] == nil {
		return nil, fmt.Errorf("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}

	// The output is (1, decoder_len, vocab); keep only the last position.
	data := logitsTensor.GetData()
	decLen := len(decoderIDs)
	if len(data) == 0 || len(data)%decLen != 0 {
		return nil, fmt.Errorf("unexpected logits shape: %d values for %d decoder positions", len(data), decLen)
	}
	vocabSize := len(data) / decLen

	logits := make([]float32, vocabSize)
	copy(logits, data[(decLen-1)*vocabSize:])

	return logits, nil
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
