package main

import (
	"fmt"

	"github.com/spboyer/quizpilot/internal/models"
	"github.com/spboyer/quizpilot/internal/prompt"
	"github.com/spf13/cobra"
)

func newPromptCommand() *cobra.Command {
	var (
		quizName string
		question string
		code     string
		options  []string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the chat prompt for a question",
		Long: `Print the exact text that would be typed into the chat for a question.
Pass --option four times, in A to D order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(options) != models.SlotCount {
				return fmt.Errorf("need exactly %d --option values, got %d", models.SlotCount, len(options))
			}
			q := models.Question{
				Prompt:    question,
				CodeBlock: models.CollapseLines(code),
			}
			for i, o := range options {
				q.Options[i] = models.CollapseLines(o)
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt.Compose(quizName, q)) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&quizName, "quiz", "", "Quiz the question belongs to")
	cmd.Flags().StringVar(&question, "question", "", "Question text")
	cmd.Flags().StringVar(&code, "code", "", "Code block shown with the question")
	cmd.Flags().StringArrayVar(&options, "option", nil, "Answer option (repeat four times)")
	_ = cmd.MarkFlagRequired("quiz")
	_ = cmd.MarkFlagRequired("question")

	return cmd
}
