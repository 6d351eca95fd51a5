package qaprep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jamesainslie/go-qaprep/config"
	"github.com/jamesainslie/go-qaprep/inference"
	"github.com/jamesainslie/go-qaprep/tokenizer"
	"github.com/jamesainslie/go-qaprep/vocab"
)

// Generator answers questions with an exported encoder/decoder QA model.
// It is safe for concurrent use.
type Generator struct {
	vocab        *vocab.Vocab
	pool         *inference.Pool
	maxAnswerLen int
	logger       *slog.Logger
}

// NewGenerator creates a Generator from an exported ONNX model and the
// vocabulary built from the training corpus.
func NewGenerator(modelPath, vocabPath string, opts ...Option) (*Generator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}
	if _, err := os.Stat(vocabPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrVocabNotFound, vocabPath)
		}
		return nil, fmt.Errorf("checking vocabulary file: %w", err)
	}

	v, err := vocab.Load(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary: %w", err)
	}

	pool, err := inference.NewPool(modelPath, o.poolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	return &Generator{
		vocab:        v,
		pool:         pool,
		maxAnswerLen: o.maxAnswerLen,
		logger:       o.logger,
	}, nil
}

// NewGeneratorFromConfig creates a Generator from the model section of the
// configuration. Explicit options override configured values.
func NewGeneratorFromConfig(cfg *config.Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("qaprep: nil config")
	}
	combined := append([]Option{WithPoolSize(cfg.Model.PoolSize)}, opts...)
	return NewGenerator(cfg.Model.Path, cfg.Model.VocabPath, combined...)
}

// Answer greedily decodes an answer for question given its supporting
// sentence, stopping at the end-of-sequence token or the answer length cap.
func (g *Generator) Answer(ctx context.Context, sentence, question string) (string, error) {
	inputIDs := g.encode(sentence, question)
	if len(inputIDs) == 0 {
		return "", nil
	}

	session, err := g.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer g.pool.Release(session)

	decoded := []int64{g.vocab.SOSID()}
	for len(decoded)-1 < g.maxAnswerLen {
		logits, err := session.Infer(ctx, inputIDs, decoded)
		if err != nil {
			return "", err
		}
		next := int64(argmax(logits))
		if next == g.vocab.EOSID() {
			break
		}
		decoded = append(decoded, next)
	}

	g.logger.Debug("answer decoded", "question", question, "tokens", len(decoded)-1)
	return strings.Join(g.vocab.Decode(decoded), " "), nil
}

// encode builds the encoder input: question tokens, separator, sentence
// tokens, terminated by the end-of-sequence token.
func (g *Generator) encode(sentence, question string) []int64 {
	questionTokens := tokenizer.Words(tokenizer.Normalize(question))
	sentenceTokens := tokenizer.Words(tokenizer.Normalize(sentence))
	if len(questionTokens) == 0 && len(sentenceTokens) == 0 {
		return nil
	}

	ids := g.vocab.Encode(questionTokens)
	ids = append(ids, g.vocab.EOSID())
	ids = append(ids, g.vocab.Encode(sentenceTokens)...)
	ids = append(ids, g.vocab.EOSID())
	return ids
}

// Close releases the session pool.
func (g *Generator) Close() error {
	if g.pool != nil {
		return g.pool.Close()
	}
	return nil
}

func argmax(values []float32) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
