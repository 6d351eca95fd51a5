// Command qaprep converts SQuAD and NewsQA corpora into aligned
// sentence/question/answer files and merges them into shuffled splits.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	qaprep "github.com/jamesainslie/go-qaprep"
	"github.com/jamesainslie/go-qaprep/config"
	"github.com/jamesainslie/go-qaprep/internal/align"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "qaprep",
	Short:         "qaprep prepares question answering corpora for model training",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Extract both corpora and merge the splits",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, err := newPipeline()
		if err != nil {
			return err
		}
		return pipe.Run(cmd.Context())
	},
}

var squadCmd = &cobra.Command{
	Use:   "squad",
	Short: "Extract the SQuAD train and dev splits",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, err := newPipeline()
		if err != nil {
			return err
		}
		return pipe.ExtractSquad(cmd.Context())
	},
}

var newsqaCmd = &cobra.Command{
	Use:   "newsqa",
	Short: "Extract the NewsQA train and dev splits",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, err := newPipeline()
		if err != nil {
			return err
		}
		return pipe.ExtractNewsQA(cmd.Context())
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge the per-corpus files into shuffled output splits",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, err := newPipeline()
		if err != nil {
			return err
		}
		return pipe.MergeSplits(cmd.Context())
	},
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Build the model vocabulary from the merged train split",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, err := newPipeline()
		if err != nil {
			return err
		}
		return pipe.BuildVocab(cmd.Context())
	},
}

var (
	answerSentence string
	answerQuestion string
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Answer a question with the exported model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		gen, err := qaprep.NewGeneratorFromConfig(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = gen.Close() }()

		answer, err := gen.Answer(cmd.Context(), answerSentence, answerQuestion)
		if err != nil {
			return err
		}
		fmt.Println(answer)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Check alignment of the output files and print corpus statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		dir := cfg.Output.Dir
		if len(args) > 0 {
			dir = args[0]
		}

		for _, split := range []string{"train", "dev"} {
			stats, err := align.Verify(dir, split)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d examples, %d empty answers\n", split, stats.Examples, stats.EmptyAnswers)
			fmt.Printf("  mean tokens: sentence %.1f, question %.1f, answer %.1f\n",
				stats.MeanSentenceLen(), stats.MeanQuestionLen(), stats.MeanAnswerLen())
		}
		return nil
	},
}

func newPipeline() (*qaprep.Pipeline, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))

	return qaprep.NewPipeline(cfg, qaprep.WithLogger(logger))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default qaprep.yaml)")
	rootCmd.AddCommand(allCmd, squadCmd, newsqaCmd, mergeCmd, vocabCmd, answerCmd, verifyCmd)

	answerCmd.Flags().StringVarP(&answerSentence, "sentence", "s", "", "context sentence")
	answerCmd.Flags().StringVarP(&answerQuestion, "question", "q", "", "question about the sentence")
	_ = answerCmd.MarkFlagRequired("sentence")
	_ = answerCmd.MarkFlagRequired("question")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
