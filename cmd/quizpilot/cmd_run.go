package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spboyer/quizpilot/internal/chat"
	"github.com/spboyer/quizpilot/internal/config"
	"github.com/spboyer/quizpilot/internal/desktop"
	"github.com/spboyer/quizpilot/internal/hooks"
	"github.com/spboyer/quizpilot/internal/orchestration"
	"github.com/spboyer/quizpilot/internal/quiz"
	"github.com/spboyer/quizpilot/internal/resolver"
	"github.com/spboyer/quizpilot/internal/screen"
	"github.com/spboyer/quizpilot/internal/session"
	"github.com/spboyer/quizpilot/internal/verify"
	"github.com/spboyer/quizpilot/internal/window"
	"github.com/spf13/cobra"
)

var (
	phaseColor = color.New(color.FgCyan, color.Bold)
	okColor    = color.New(color.FgGreen)
	waitColor  = color.New(color.FgYellow)
	failColor  = color.New(color.FgRed, color.Bold)
)

type runOptions struct {
	configPath    string
	envFile       string
	quizzes       []string
	practice      bool
	responseWait  time.Duration
	imagesDir     string
	transcriptDir string
	sessionLog    string
	waitStrategy  string
	printURL      bool
	noHooks       bool
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Take a quiz",
		Long: `Log in, start the quiz and answer every question through the chat window.

Credentials come from QUIZPILOT_EMAIL and QUIZPILOT_PASSWORD, read from the
environment or from the --env-file. Settings are read from .quizpilot.yaml in
the current directory or a parent; flags override both.

Only the first quiz is taken; any further --quiz values are reported as skipped.
Hooks listed under "hooks" in the config file run before the quiz, after it
completes, and when it aborts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runE(cmd, opts)
		},
	}
	bindRunFlags(cmd, opts)

	return cmd
}

func bindRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to the config file (default: search for "+config.FileName+")")
	cmd.Flags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "File to read QUIZPILOT_* variables from")
	cmd.Flags().StringArrayVar(&opts.quizzes, "quiz", nil, "Quiz to take (can be repeated, only the first is taken)")
	cmd.Flags().BoolVar(&opts.practice, "practice", false, "Take the quiz in practice mode")
	cmd.Flags().DurationVar(&opts.responseWait, "response-wait", 0, "How long to wait for the chat response (default 30s)")
	cmd.Flags().StringVar(&opts.imagesDir, "images-dir", "", "Directory holding the reference images")
	cmd.Flags().StringVar(&opts.transcriptDir, "transcript-dir", "", "Directory the transcript is written to")
	cmd.Flags().StringVar(&opts.sessionLog, "session-log", "", "Write run events as NDJSON to this file, or to a timestamped file in this directory")
	cmd.Flags().StringVar(&opts.waitStrategy, "wait-strategy", "", "How to wait for the chat response: poll or fixed")
	cmd.Flags().BoolVar(&opts.printURL, "print-url", false, "Print the quiz links and exit")
	cmd.Flags().BoolVar(&opts.noHooks, "no-hooks", false, "Skip the hooks configured in "+config.FileName)
}

// loadRunConfig layers defaults, the config file, the environment and flags.
func loadRunConfig(cmd *cobra.Command, opts *runOptions, environ []string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	env, err := config.ReadEnv(opts.envFile, environ)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(env)

	flags := cmd.Flags()
	if len(opts.quizzes) > 0 {
		cfg.Quiz.Names = opts.quizzes
	}
	if flags.Changed("practice") {
		cfg.Quiz.Practice = &opts.practice
	}
	if opts.responseWait > 0 {
		cfg.Timing.ResponseWait = opts.responseWait
	}
	if opts.imagesDir != "" {
		cfg.Screen.ImagesDir = opts.imagesDir
	}
	if opts.transcriptDir != "" {
		cfg.Transcript.Dir = opts.transcriptDir
	}
	if opts.waitStrategy != "" {
		cfg.Chat.WaitStrategy = opts.waitStrategy
	}
	if opts.noHooks {
		cfg.Hooks = hooks.Config{}
	}
	return cfg, nil
}

func runE(cmd *cobra.Command, opts *runOptions) error {
	out := cmd.OutOrStdout()

	cfg, err := loadRunConfig(cmd, opts, os.Environ())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.printURL {
		return printQuizURLs(out, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	robot := desktop.NewRobot()
	locator := screen.NewLocator(robot, cfg.Screen.ImagesDir, screen.WithMinConfidence(cfg.Screen.MinConfidence))
	positioner := window.NewPositioner(robot, cfg.Screen.SnapModifier, cfg.Timing.SnapSettle)
	gate := verify.NewGate(os.Stdin, out, cfg.Timing.VerificationWait)

	events, err := session.Open(opts.sessionLog)
	if err != nil {
		return err
	}
	defer events.Close() //nolint:errcheck

	mode := "graded"
	if cfg.IsPractice() {
		mode = "practice"
	}
	phaseColor.Fprintf(out, "Starting %s quiz %q (%d questions)\n", mode, cfg.Quiz.Names[0], cfg.RoundCount()) //nolint:errcheck

	hookRunner := &hooks.Runner{
		Output: out,
		Env: []string{
			"QUIZPILOT_QUIZ=" + cfg.Quiz.Names[0],
			"QUIZPILOT_MODE=" + mode,
		},
	}
	if err := hookRunner.Execute(ctx, "before_run", cfg.Hooks.BeforeRun); err != nil {
		return err
	}

	res, err := takeQuiz(ctx, cmd, cfg, robot, locator, positioner, gate, events)
	if err != nil {
		err = classifyRunError(err)
		failColor.Fprintf(out, "✗ %v\n", err) //nolint:errcheck
		hookRunner.Env = append(hookRunner.Env, "QUIZPILOT_ERROR="+err.Error())
		if hookErr := hookRunner.Execute(context.WithoutCancel(ctx), "on_abort", cfg.Hooks.OnAbort); hookErr != nil {
			slog.Warn("on_abort hook failed", "error", hookErr)
		}
		return err
	}

	for _, name := range res.Skipped {
		waitColor.Fprintf(out, "Skipped %q: one quiz per run\n", name) //nolint:errcheck
	}
	okColor.Fprintf(out, "✓ Answered %d questions in %s\n", len(res.Rounds), res.Duration.Round(time.Second)) //nolint:errcheck
	fmt.Fprintf(out, "Transcript: %s\n", res.TranscriptPath)                                                  //nolint:errcheck

	hookRunner.Env = append(hookRunner.Env, "QUIZPILOT_TRANSCRIPT="+res.TranscriptPath)
	return hookRunner.Execute(ctx, "after_run", cfg.Hooks.AfterRun)
}

// takeQuiz launches the quiz browser and drives the run to completion.
func takeQuiz(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	robot desktop.Desktop,
	locator *screen.Locator,
	positioner *window.Positioner,
	gate verify.Gate,
	events session.Logger,
) (*orchestration.Result, error) {
	out := cmd.OutOrStdout()

	driver, err := quiz.Launch(cfg, locator, gate)
	if err != nil {
		return nil, err
	}
	defer driver.Close() //nolint:errcheck

	relay := chat.NewRelay(robot, locator, positioner, cfg, chat.WithProgress(cmd.ErrOrStderr()))
	runner := orchestration.NewRunner(cfg, driver, relay, positioner, orchestration.WithEventLog(events))
	runner.OnProgress(progressPrinter(out))

	return runner.Run(ctx, orchestration.NewQueue(cfg.Quiz.Names...))
}

// classifyRunError marks deliberate stops so main can exit with
// ExitRunAborted.
func classifyRunError(err error) error {
	var resErr *resolver.ResolutionError
	switch {
	case errors.As(err, &resErr):
		return &RunAbortedError{Reason: "no answer letter in the chat response", Err: err}
	case errors.Is(err, verify.ErrAborted):
		return &RunAbortedError{Reason: "verification not completed", Err: err}
	case errors.Is(err, context.Canceled):
		return &RunAbortedError{Reason: "interrupted", Err: err}
	}
	return err
}

func progressPrinter(w io.Writer) orchestration.ProgressListener {
	return func(e orchestration.ProgressEvent) {
		switch e.EventType {
		case orchestration.EventQuizStart:
			phaseColor.Fprintf(w, "Quiz %q started\n", e.Quiz) //nolint:errcheck
		case orchestration.EventRoundStart:
			fmt.Fprintf(w, "[%d/%d] Reading question\n", e.Round, e.TotalRounds) //nolint:errcheck
		case orchestration.EventPromptSent:
			waitColor.Fprintf(w, "[%d/%d] Asked the chat\n", e.Round, e.TotalRounds) //nolint:errcheck
		case orchestration.EventAnswerSelected:
			option, _ := e.Details["option"].(string)                                       //nolint:errcheck
			okColor.Fprintf(w, "[%d/%d] %s - %s\n", e.Round, e.TotalRounds, e.Letter, option) //nolint:errcheck
		}
	}
}

func printQuizURLs(w io.Writer, cfg *config.Config) error {
	if len(cfg.Quiz.Names) == 0 {
		return errors.New("no quiz given; use --quiz or QUIZPILOT_QUIZ")
	}
	for _, name := range cfg.Quiz.Names {
		fmt.Fprintln(w, quiz.BuildQuizURL(cfg.Page.AssessmentsURL, name, cfg.IsPractice())) //nolint:errcheck
	}
	return nil
}
