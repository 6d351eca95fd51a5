package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	qaprep "github.com/jamesainslie/go-qaprep"
)

func main() {
	modelPath := flag.String("model", "", "Path to ONNX model file")
	vocabPath := flag.String("vocab", "", "Path to vocabulary JSON file")
	sentence := flag.String("sentence", "", "Context sentence")
	question := flag.String("question", "", "Question about the sentence")
	maxLen := flag.Int("max-len", 32, "Maximum answer length in tokens")
	poolSize := flag.Int("pool", 0, "ONNX session pool size (default: number of CPUs)")

	flag.Parse()

	if *modelPath == "" || *vocabPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: qa-gen -model MODEL -vocab VOCAB -sentence TEXT [-question TEXT]")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *sentence == "" {
		fmt.Fprintln(os.Stderr, "Error: no sentence provided")
		os.Exit(1)
	}

	gen, err := qaprep.NewGenerator(*modelPath, *vocabPath,
		qaprep.WithMaxAnswerLen(*maxLen), qaprep.WithPoolSize(*poolSize))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating generator: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = gen.Close() }() // Cleanup error ignored in CLI

	ctx := context.Background()

	if *question != "" {
		answer, err := gen.Answer(ctx, *sentence, *question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Answer: %s\n", answer)
		return
	}

	// Without -question, read one question per line from stdin.
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		q := scanner.Text()
		if q == "" {
			continue
		}
		answer, err := gen.Answer(ctx, *sentence, q)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s\t%s\n", q, answer)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}
