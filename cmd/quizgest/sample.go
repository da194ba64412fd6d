package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/quizgest/internal/sample"
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate questions from the built-in topic bank",
		Long: fmt.Sprintf("Generate questions from the built-in topic bank. Topics: %s.",
			strings.Join(sample.Topics(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			topic, _ := cmd.Flags().GetString("topic")
			if topic != "" && !sample.HasTopic(topic) {
				log.Warn("unknown topic, using bank order", "topic", topic)
			}

			opts := options(cmd)
			resp, err := eng.Sample(cmd.Context(), sample.Request{
				QuestionType: string(opts.QuestionType),
				Count:        opts.QuestionCount,
				Difficulty:   string(opts.Difficulty),
				Topic:        topic,
			})
			if err != nil {
				return err
			}
			return render(cmd, resp)
		},
	}
	questionFlags(cmd)
	cmd.Flags().String("topic", "", "Topic to draw the first questions from")
	return cmd
}
