//go:build ignore

// Downsample a SQuAD JSON file into a small fixture for tests and local runs.
// Usage: go run ./scripts/sample-squad.go -in data/squad/train-v2.0.json -out testdata/squad-sample.json -articles 5
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
)

type corpus struct {
	Version string            `json:"version"`
	Data    []json.RawMessage `json:"data"`
}

func main() {
	inPath := flag.String("in", "", "Input SQuAD JSON file")
	outPath := flag.String("out", "squad-sample.json", "Output file")
	articles := flag.Int("articles", 5, "Number of articles to keep")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: go run ./scripts/sample-squad.go -in FILE [-out FILE] [-articles N]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	raw, err := os.ReadFile(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *inPath, err)
		os.Exit(1)
	}

	var c corpus
	if err := json.Unmarshal(raw, &c); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", *inPath, err)
		os.Exit(1)
	}

	total := len(c.Data)
	if *articles < total {
		c.Data = c.Data[:*articles]
	}

	out, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding sample: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Kept %d of %d articles -> %s\n", len(c.Data), total, *outPath)
}
