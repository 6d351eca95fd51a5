package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jamesainslie/go-qaprep/tokenizer"
)

// cnnPrefix is a dataset artifact: CNN articles open with an attribution that
// tokenizes to this exact prefix in the joined sentence line.
const cnnPrefix = "( CNN ) -- "

// Combined NewsQA JSON schema, reduced to the fields the pipeline reads.
type newsQACorpus struct {
	Data []newsQAArticle `json:"data"`
}

type newsQAArticle struct {
	StoryID   string           `json:"storyId"`
	Type      string           `json:"type"`
	Text      string           `json:"text"`
	Questions []newsQAQuestion `json:"questions"`
}

type newsQAQuestion struct {
	Q             string      `json:"q"`
	IsQuestionBad float64     `json:"isQuestionBad"`
	Consensus     *newsQASpan `json:"consensus"`
}

// newsQASpan is the consensus answer span in character offsets. Consensus
// objects without a span ({"badQuestion": true}, {"noAnswer": true}) decode
// to S == E == 0 and are filtered out.
type newsQASpan struct {
	S int `json:"s"`
	E int `json:"e"`
}

// NewsQAExtractor reads the combined NewsQA JSON file, which carries every
// split in one file tagged per article. Quality gates (bad-question flag,
// missing consensus span, non-interrogative text) silently skip single
// questions; unresolvable answer offsets follow the FailPolicy (Skip for
// genuine NewsQA data).
type NewsQAExtractor struct {
	path   string
	tok    Tokenizer
	onMiss FailPolicy
	logger *slog.Logger
}

// NewNewsQAExtractor creates an extractor over the combined corpus file.
func NewNewsQAExtractor(path string, tok Tokenizer, onMiss FailPolicy, logger *slog.Logger) *NewsQAExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsQAExtractor{path: path, tok: tok, onMiss: onMiss, logger: logger}
}

// Name identifies the corpus.
func (e *NewsQAExtractor) Name() string { return "newsqa" }

// Extract streams one Example per usable question of the split to emit.
func (e *NewsQAExtractor) Extract(ctx context.Context, split string, emit EmitFunc) error {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", e.path, err)
	}
	var corpus newsQACorpus
	if err := json.Unmarshal(data, &corpus); err != nil {
		return fmt.Errorf("parsing %s: %w", e.path, err)
	}

	emitted, skipped := 0, 0
	for _, article := range corpus.Data {
		if err := ctx.Err(); err != nil {
			return err
		}
		if article.Type != split {
			continue
		}
		n, s, err := e.extractArticle(article, emit)
		if err != nil {
			return err
		}
		emitted += n
		skipped += s
	}

	e.logger.Info("newsqa split extracted", "split", split, "examples", emitted, "skipped", skipped)
	return nil
}

func (e *NewsQAExtractor) extractArticle(article newsQAArticle, emit EmitFunc) (emitted, skipped int, err error) {
	passage := e.tok.Normalize(article.Text)
	passageRunes := []rune(passage)
	passageTokens := e.tok.Words(passage)
	sentences := e.tok.Sentences(passage)

	spans, err := tokenizer.IndexSpans(passage, passageTokens)
	if err != nil {
		return 0, 0, fmt.Errorf("newsqa story %q: %w", article.StoryID, err)
	}
	sentStarts := tokenizer.SentenceStarts(spans, sentences)

	for _, q := range article.Questions {
		if q.IsQuestionBad != 0 {
			continue
		}
		if q.Consensus == nil || q.Consensus.E <= q.Consensus.S {
			continue
		}
		if q.Consensus.S < 0 || q.Consensus.S >= len(passageRunes) {
			continue
		}

		question := strings.TrimSpace(q.Q)
		if !strings.HasSuffix(question, "?") {
			continue
		}

		sentence, resolveErr := ResolveSentence(q.Consensus.S, sentStarts, sentences)
		if resolveErr != nil {
			if e.onMiss == Skip {
				e.logger.Warn("skipping question", "corpus", "newsqa", "story", article.StoryID, "error", resolveErr)
				skipped++
				continue
			}
			return emitted, skipped, fmt.Errorf("newsqa story %q: %w", article.StoryID, resolveErr)
		}

		answer := answerText(passageRunes, q.Consensus.S, q.Consensus.E)
		ex := Example{
			Sentence: cleanSentence(sentence),
			Question: e.tok.Words(question),
			Answer:   e.tok.Words(answer),
		}
		if err := emit(ex); err != nil {
			return emitted, skipped, err
		}
		emitted++
	}

	return emitted, skipped, nil
}

// answerText slices the consensus span out of the passage and strips the
// trailing periods, pipes, spaces, and newlines the annotations tend to drag
// in.
func answerText(passage []rune, s, e int) string {
	if e > len(passage) {
		e = len(passage)
	}
	text := string(passage[s:e])
	text = strings.TrimRight(text, ".| ")
	return strings.TrimRight(text, "\n")
}

// cleanSentence drops newline and blank tokens, then removes everything up to
// and including the CNN attribution prefix if present.
func cleanSentence(tokens []string) []string {
	cleaned := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(strings.Trim(tok, "\n"))
		if tok == "" {
			continue
		}
		cleaned = append(cleaned, tok)
	}

	line := strings.Join(cleaned, " ")
	if at := strings.Index(line, cnnPrefix); at >= 0 {
		line = line[at+len(cnnPrefix):]
	}
	return strings.Fields(line)
}
