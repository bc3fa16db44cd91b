// Package verify blocks the run while the operator completes an identity
// challenge in the quiz browser.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/quizpilot/internal/utils"
	"golang.org/x/term"
)

// ErrAborted is returned when the operator declines to continue.
var ErrAborted = errors.New("verification aborted by operator")

// Gate waits for a human to finish something the bot cannot detect.
type Gate interface {
	Wait(ctx context.Context, message string) error
}

// TimerGate waits a fixed duration. It cannot tell whether the challenge
// was actually completed.
type TimerGate struct {
	Duration time.Duration
}

func (g TimerGate) Wait(ctx context.Context, message string) error {
	slog.Info("Waiting for manual verification", "message", message, "wait", g.Duration)
	return utils.Sleep(ctx, g.Duration)
}

// promptConfirm is a test hook for replacing the confirmation prompt in tests.
var promptConfirm = defaultPromptConfirm

func defaultPromptConfirm(in io.Reader, out io.Writer, question string) (bool, error) {
	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Description("Complete the challenge in the quiz browser, then continue.").
				Affirmative("Continue").
				Negative("Abort").
				Value(&confirmed),
		),
	).WithInput(in).WithOutput(out).Run()
	return confirmed, err
}

// PromptGate asks the operator to confirm once the challenge is done.
type PromptGate struct {
	in  io.Reader
	out io.Writer
}

func (g *PromptGate) Wait(ctx context.Context, message string) error {
	type result struct {
		ok  bool
		err error
	}

	confirm := promptConfirm
	done := make(chan result, 1)
	go func() {
		ok, err := confirm(g.in, g.out, message)
		done <- result{ok: ok, err: err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, huh.ErrUserAborted) {
				return ErrAborted
			}
			return fmt.Errorf("verification prompt: %w", r.err)
		}
		if !r.ok {
			return ErrAborted
		}
		return nil
	}
}

// NewGate returns a PromptGate when in is an interactive terminal and a
// TimerGate of fallback otherwise.
func NewGate(in io.Reader, out io.Writer, fallback time.Duration) Gate {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &PromptGate{in: in, out: out}
	}
	return TimerGate{Duration: fallback}
}
