package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quizpilot",
		Short: "QuizPilot - answers skill assessment quizzes through a chat window",
		Long: `QuizPilot drives a skill assessment quiz in an automated browser and relays
every question to a chat assistant running in a second browser window.

The chat window is operated with simulated mouse and keyboard input, so both
windows must stay visible and the reference images must match your screen.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newPromptCommand())
	cmd.AddCommand(newLocateCommand())
	cmd.AddCommand(newSessionCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
