package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jamesainslie/go-qaprep/tokenizer"
)

// SQuAD v2 JSON schema, reduced to the fields the pipeline reads.
type squadCorpus struct {
	Data []squadArticle `json:"data"`
}

type squadArticle struct {
	Title      string           `json:"title"`
	Paragraphs []squadParagraph `json:"paragraphs"`
}

type squadParagraph struct {
	Context string    `json:"context"`
	QAs     []squadQA `json:"qas"`
}

type squadQA struct {
	ID       string        `json:"id"`
	Question string        `json:"question"`
	Answers  []squadAnswer `json:"answers"`
}

type squadAnswer struct {
	Text        string `json:"text"`
	AnswerStart int    `json:"answer_start"`
}

// SquadExtractor reads SQuAD v2 style JSON splits. Unanswerable questions
// produce no example; an unresolvable answer offset is handled per the
// configured FailPolicy (Abort for genuine SQuAD data).
type SquadExtractor struct {
	files  map[string]string
	tok    Tokenizer
	policy AnswerPolicy
	onMiss FailPolicy
	logger *slog.Logger
}

// NewSquadExtractor creates an extractor over the split files. trainPath
// feeds the "train" split, devPath the "dev" split.
func NewSquadExtractor(trainPath, devPath string, tok Tokenizer, policy AnswerPolicy, onMiss FailPolicy, logger *slog.Logger) *SquadExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &SquadExtractor{
		files:  map[string]string{"train": trainPath, "dev": devPath},
		tok:    tok,
		policy: policy,
		onMiss: onMiss,
		logger: logger,
	}
}

// Name identifies the corpus.
func (e *SquadExtractor) Name() string { return "squad" }

// Extract streams one Example per usable question of the split to emit.
func (e *SquadExtractor) Extract(ctx context.Context, split string, emit EmitFunc) error {
	path, ok := e.files[split]
	if !ok {
		return fmt.Errorf("squad: unknown split %q", split)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var corpus squadCorpus
	if err := json.Unmarshal(data, &corpus); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	emitted := 0
	for _, article := range corpus.Data {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, para := range article.Paragraphs {
			n, err := e.extractParagraph(split, article.Title, para, emit)
			if err != nil {
				return err
			}
			emitted += n
		}
	}

	e.logger.Info("squad split extracted", "split", split, "articles", len(corpus.Data), "examples", emitted)
	return nil
}

func (e *SquadExtractor) extractParagraph(split, title string, para squadParagraph, emit EmitFunc) (int, error) {
	passage := e.tok.Normalize(para.Context)
	passageTokens := e.tok.Words(passage)
	sentences := e.tok.Sentences(passage)

	spans, err := tokenizer.IndexSpans(passage, passageTokens)
	if err != nil {
		return 0, fmt.Errorf("squad article %q: %w", title, err)
	}
	sentStarts := tokenizer.SentenceStarts(spans, sentences)

	emitted := 0
	for _, qa := range para.QAs {
		question := e.tok.Words(e.tok.Normalize(qa.Question))

		answers := qa.Answers
		if len(answers) == 0 {
			continue
		}
		switch {
		case split == "train":
			// Training keeps only the top answer.
			answers = answers[:1]
		case e.policy == OnePerQuestion:
			answers = answers[len(answers)-1:]
		}

		for _, ans := range answers {
			sentence, err := ResolveSentence(ans.AnswerStart, sentStarts, sentences)
			if err != nil {
				if e.onMiss == Skip {
					e.logger.Warn("skipping question", "corpus", "squad", "id", qa.ID, "error", err)
					continue
				}
				return emitted, fmt.Errorf("squad article %q, question %s: %w", title, qa.ID, err)
			}

			answer := e.tok.Words(e.tok.Normalize(ans.Text))
			if err := emit(Example{Sentence: sentence, Question: question, Answer: answer}); err != nil {
				return emitted, err
			}
			emitted++
		}
	}

	return emitted, nil
}
