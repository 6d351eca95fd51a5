// Package dataset converts raw QA corpora (SQuAD, NewsQA) into aligned
// sentence/question/answer corpus files.
//
// Each extractor streams one example per usable question to an emit callback;
// Writer appends the three token sequences of an example to the split's three
// parallel files in one call, so line N of every file always refers to the
// same example. Merge concatenates per-corpus files and shuffles them with a
// single shared permutation, preserving that alignment.
package dataset

import (
	"context"
	"fmt"
)

// Example is one preprocessed QA example: the supporting sentence for a
// question, the question, and the answer, each as word tokens. Examples are
// written as soon as they are produced and never mutated afterwards.
type Example struct {
	Sentence []string
	Question []string
	Answer   []string
}

// Tokenizer supplies text cleaning, word tokenization, and sentence
// splitting. The tokenizer package provides the default implementation.
type Tokenizer interface {
	Normalize(text string) string
	Words(text string) []string
	Sentences(text string) [][]string
}

// FailPolicy controls what an unresolvable answer offset does to a run.
type FailPolicy int

const (
	// Abort stops the whole extraction. SQuAD annotations always place the
	// answer inside the passage, so a miss means the pipeline itself broke.
	Abort FailPolicy = iota
	// Skip drops the affected question and continues. NewsQA consensus spans
	// are crowd-sourced and occasionally point outside any sentence.
	Skip
)

// AnswerPolicy controls how many examples an eval-split question with
// multiple gold answers produces.
type AnswerPolicy int

const (
	// OnePerAnswer emits one example for every provided answer.
	OnePerAnswer AnswerPolicy = iota
	// OnePerQuestion emits a single example using the last provided answer,
	// matching historical preprocessor output.
	OnePerQuestion
)

// ParseAnswerPolicy maps a configuration string to an AnswerPolicy.
func ParseAnswerPolicy(s string) (AnswerPolicy, error) {
	switch s {
	case "", "one-per-answer":
		return OnePerAnswer, nil
	case "one-per-question":
		return OnePerQuestion, nil
	default:
		return OnePerAnswer, fmt.Errorf("dataset: unknown answer policy %q", s)
	}
}

// EmitFunc receives extracted examples in corpus order. Returning an error
// stops the extraction.
type EmitFunc func(Example) error

// Extractor turns one corpus split into a stream of examples.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, split string, emit EmitFunc) error
}
