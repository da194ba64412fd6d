package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dgallion1/quizgest/internal/config"
	"github.com/dgallion1/quizgest/internal/engine"
	"github.com/dgallion1/quizgest/internal/lexicon"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "quizgest",
		Short:        "Generate quiz questions from documents",
		Long:         "quizgest builds multiple choice, true/false and short answer questions from plain text and common document formats.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("lexicon", "", "YAML file extending the built-in lexicon")
	root.PersistentFlags().StringP("output", "o", "json", "Output format: json or yaml")
	root.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newSampleCmd())
	return root
}

// questionFlags registers the options shared by generate and sample.
func questionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "", "Question type: multiple_choice, true_false, short_answer or mixed")
	cmd.Flags().IntP("count", "n", 0, "Number of questions (1-50)")
	cmd.Flags().StringP("difficulty", "d", "", "Difficulty: easy, medium, hard or exam")
}

// options resolves the question flags the way the HTTP API resolves a request.
func options(cmd *cobra.Command) engine.Options {
	typ, _ := cmd.Flags().GetString("type")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	count := engine.FlexInt{}
	if cmd.Flags().Changed("count") {
		n, _ := cmd.Flags().GetInt("count")
		count = engine.Count(n)
	}
	return engine.ResolveOptions(typ, count, difficulty)
}

// newEngine builds an engine from the persistent flags.
func newEngine(cmd *cobra.Command) (*engine.Engine, *slog.Logger, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := config.ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	path, _ := cmd.Flags().GetString("lexicon")
	lex, err := lexicon.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load lexicon: %w", err)
	}
	return engine.New(lex, log, nil), log, nil
}
