// Package vocab builds and serializes the word vocabulary that maps aligned
// corpus tokens to model input IDs.
package vocab

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Special tokens, always at the head of the vocabulary in this order.
const (
	PadToken = "<pad>"
	UnkToken = "<unk>"
	SOSToken = "<sos>"
	EOSToken = "<eos>"
)

var specials = []string{PadToken, UnkToken, SOSToken, EOSToken}

// Vocab maps words to model input IDs and back. IDs 0-3 are the special
// tokens; the rest are corpus words by descending frequency.
type Vocab struct {
	words []string
	index map[string]int64
}

// New builds a Vocab from an ordered word list. The list must start with the
// four special tokens.
func New(words []string) (*Vocab, error) {
	if len(words) < len(specials) {
		return nil, fmt.Errorf("vocab: word list too short: %d entries", len(words))
	}
	for i, s := range specials {
		if words[i] != s {
			return nil, fmt.Errorf("vocab: word %d is %q, want %q", i, words[i], s)
		}
	}

	index := make(map[string]int64, len(words))
	for i, w := range words {
		if _, dup := index[w]; dup {
			return nil, fmt.Errorf("vocab: duplicate word %q", w)
		}
		index[w] = int64(i)
	}
	return &Vocab{words: words, index: index}, nil
}

// Build scans aligned corpus files and returns a frequency-ranked vocabulary.
// maxSize caps the total size including special tokens; zero means unbounded.
// Ties are broken alphabetically so builds are deterministic.
func Build(files []string, maxSize int) (*Vocab, error) {
	counts := make(map[string]int)
	for _, path := range files {
		if err := countWords(path, counts); err != nil {
			return nil, err
		}
	}

	type wordCount struct {
		word  string
		count int
	}
	ranked := make([]wordCount, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, wordCount{w, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	words := make([]string, 0, len(specials)+len(ranked))
	words = append(words, specials...)
	for _, wc := range ranked {
		if maxSize > 0 && len(words) >= maxSize {
			break
		}
		words = append(words, wc.word)
	}

	return New(words)
}

func countWords(path string, counts map[string]int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		for _, w := range strings.Fields(scanner.Text()) {
			counts[w]++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// Size returns the vocabulary size including special tokens.
func (v *Vocab) Size() int { return len(v.words) }

// ID returns the word's ID, or the <unk> ID for out-of-vocabulary words.
func (v *Vocab) ID(word string) int64 {
	if id, ok := v.index[word]; ok {
		return id
	}
	return v.UnkID()
}

// Word returns the word for an ID, or <unk> for IDs out of range.
func (v *Vocab) Word(id int64) string {
	if id < 0 || id >= int64(len(v.words)) {
		return UnkToken
	}
	return v.words[id]
}

// Encode maps tokens to IDs, unknown words to <unk>.
func (v *Vocab) Encode(tokens []string) []int64 {
	ids := make([]int64, len(tokens))
	for i, tok := range tokens {
		ids[i] = v.ID(tok)
	}
	return ids
}

// Decode maps IDs back to words, dropping special tokens.
func (v *Vocab) Decode(ids []int64) []string {
	words := make([]string, 0, len(ids))
	for _, id := range ids {
		if id < int64(len(specials)) {
			continue
		}
		words = append(words, v.Word(id))
	}
	return words
}

// PadID returns the <pad> token ID.
func (v *Vocab) PadID() int64 { return 0 }

// UnkID returns the <unk> token ID.
func (v *Vocab) UnkID() int64 { return 1 }

// SOSID returns the start-of-sequence token ID.
func (v *Vocab) SOSID() int64 { return 2 }

// EOSID returns the end-of-sequence token ID.
func (v *Vocab) EOSID() int64 { return 3 }

type vocabFile struct {
	Words []string `json:"words"`
}

// Save writes the vocabulary as JSON.
func (v *Vocab) Save(path string) error {
	data, err := json.Marshal(vocabFile{Words: v.words})
	if err != nil {
		return fmt.Errorf("encoding vocabulary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Load reads a vocabulary saved by Save.
func Load(path string) (*Vocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var vf vocabFile
	if err := json.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return New(vf.Words)
}
