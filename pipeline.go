package qaprep

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/jamesainslie/go-qaprep/config"
	"github.com/jamesainslie/go-qaprep/dataset"
	"github.com/jamesainslie/go-qaprep/tokenizer"
	"github.com/jamesainslie/go-qaprep/vocab"
)

// splits are processed in this order for every corpus.
var splits = []string{"train", "dev"}

// Pipeline runs corpus extraction and merging end to end: SQuAD and NewsQA
// are each written to per-corpus aligned files, then both are merged per
// split under the output directory with a single shared shuffle permutation.
//
// Execution is sequential by design: every per-corpus write must complete
// before the merge reads it.
type Pipeline struct {
	cfg    *config.Config
	policy dataset.AnswerPolicy
	tok    tokenizer.Tokenizer
	logger *slog.Logger
}

// NewPipeline creates a Pipeline from explicit configuration.
func NewPipeline(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("qaprep: nil config")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	policy, err := dataset.ParseAnswerPolicy(cfg.Output.AnswerPolicy)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:    cfg,
		policy: policy,
		logger: o.logger,
	}, nil
}

// Run executes the full pipeline. A fatal error aborts the run and leaves
// any partial output files on disk.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.ExtractSquad(ctx); err != nil {
		return err
	}
	if err := p.ExtractNewsQA(ctx); err != nil {
		return err
	}
	return p.MergeSplits(ctx)
}

// ExtractSquad writes both SQuAD splits under the SQuAD data directory.
// Unresolvable answer offsets abort the run: SQuAD annotations always place
// the answer inside the passage.
func (p *Pipeline) ExtractSquad(ctx context.Context) error {
	ext := dataset.NewSquadExtractor(
		p.cfg.Squad.TrainPath(),
		p.cfg.Squad.DevPath(),
		p.tok,
		p.policy,
		dataset.Abort,
		p.logger,
	)
	return p.extractSplits(ctx, ext, p.cfg.Squad.DataDir)
}

// ExtractNewsQA writes both NewsQA splits under the NewsQA data directory.
// Unresolvable answer offsets skip the question.
func (p *Pipeline) ExtractNewsQA(ctx context.Context) error {
	ext := dataset.NewNewsQAExtractor(
		p.cfg.NewsQA.Path(),
		p.tok,
		dataset.Skip,
		p.logger,
	)
	return p.extractSplits(ctx, ext, p.cfg.NewsQA.DataDir)
}

func (p *Pipeline) extractSplits(ctx context.Context, ext dataset.Extractor, dir string) error {
	for _, split := range splits {
		if err := p.extractSplit(ctx, ext, dir, split); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) extractSplit(ctx context.Context, ext dataset.Extractor, dir, split string) error {
	w, err := dataset.NewWriter(dir, split)
	if err != nil {
		return err
	}

	if err := ext.Extract(ctx, split, w.Emit); err != nil {
		_ = w.Close() // Extraction error takes precedence
		return fmt.Errorf("%s %s: %w", ext.Name(), split, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s %s: %w", ext.Name(), split, err)
	}

	p.logger.Info("split written", "corpus", ext.Name(), "split", split, "examples", w.Count(), "dir", dir)
	return nil
}

// BuildVocab builds the word vocabulary from the merged train split and saves
// it to the configured vocabulary path. Run MergeSplits first; the dev split
// is excluded so evaluation words outside the training data map to <unk>.
func (p *Pipeline) BuildVocab(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.cfg.Model.VocabPath == "" {
		return fmt.Errorf("qaprep: vocabulary path not configured")
	}

	files := make([]string, 0, len(dataset.Suffixes()))
	for _, suffix := range dataset.Suffixes() {
		files = append(files, dataset.SplitFile(p.cfg.Output.Dir, "train", suffix))
	}

	v, err := vocab.Build(files, p.cfg.Model.VocabSize)
	if err != nil {
		return fmt.Errorf("building vocabulary: %w", err)
	}
	if err := v.Save(p.cfg.Model.VocabPath); err != nil {
		return fmt.Errorf("saving vocabulary: %w", err)
	}

	p.logger.Info("vocabulary written", "words", v.Size(), "path", p.cfg.Model.VocabPath)
	return nil
}

// MergeSplits combines the per-corpus aligned files of every split under the
// output directory, shuffled with the configured seed.
func (p *Pipeline) MergeSplits(ctx context.Context) error {
	srcDirs := []string{p.cfg.Squad.DataDir, p.cfg.NewsQA.DataDir}
	rng := rand.New(rand.NewSource(p.cfg.Output.Seed))

	for _, split := range splits {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := dataset.Merge(srcDirs, split, p.cfg.Output.Dir, rng); err != nil {
			return fmt.Errorf("merging %s: %w", split, err)
		}
		p.logger.Info("split merged", "split", split, "dir", p.cfg.Output.Dir)
	}
	return nil
}
