package main

import (
	"fmt"
	"strings"

	"github.com/spboyer/quizpilot/internal/resolver"
	"github.com/spf13/cobra"
)

func newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <response text>",
		Short: "Show which answer letter a chat response resolves to",
		Example: `  quizpilot resolve "B."
  quizpilot resolve The answer is C`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := resolver.Resolve(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), l) //nolint:errcheck
			return nil
		},
	}
}
