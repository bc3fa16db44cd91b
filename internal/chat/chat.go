// Package chat relays prompts to a web chat window through simulated input
// and reads the reply back through the clipboard.
package chat

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/spboyer/quizpilot/internal/config"
	"github.com/spboyer/quizpilot/internal/desktop"
	"github.com/spboyer/quizpilot/internal/screen"
	"github.com/spboyer/quizpilot/internal/spinner"
	"github.com/spboyer/quizpilot/internal/utils"
)

// copyModifier is held with "c" to copy the selected response.
const copyModifier = "ctrl"

// ResponseTimeoutError means the chat reply did not settle within the
// response wait.
type ResponseTimeoutError struct {
	Waited time.Duration
	// Last is the final text read before giving up, possibly empty.
	Last string
}

func (e *ResponseTimeoutError) Error() string {
	if e.Last == "" {
		return fmt.Sprintf("no chat response after %s", e.Waited)
	}
	return fmt.Sprintf("chat response still changing after %s (last read %q)", e.Waited, e.Last)
}

var errUnsettled = errors.New("response not settled")

// Locator finds reference images on screen.
type Locator interface {
	Locate(ctx context.Context, name string) (screen.Region, error)
	LocateAndClick(ctx context.Context, name string, offset image.Point) (image.Point, error)
}

// Snapper moves the focused window to one half of the screen.
type Snapper interface {
	Snap(ctx context.Context, toRight bool) error
}

// Relay types prompts into the chat window and reads replies back.
type Relay struct {
	desktop  desktop.Desktop
	locator  Locator
	snapper  Snapper
	launcher Launcher
	progress io.Writer

	chat   config.ChatConfig
	screen config.ScreenConfig
	timing config.TimingConfig
}

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithLauncher replaces the process launcher used by OpenChat.
func WithLauncher(l Launcher) RelayOption {
	return func(r *Relay) { r.launcher = l }
}

// WithProgress shows a countdown on w while a fixed response wait runs.
func WithProgress(w io.Writer) RelayOption {
	return func(r *Relay) { r.progress = w }
}

// NewRelay returns a Relay for the chat described by cfg.
func NewRelay(d desktop.Desktop, locator Locator, snapper Snapper, cfg *config.Config, opts ...RelayOption) *Relay {
	r := &Relay{
		desktop:  d,
		locator:  locator,
		snapper:  snapper,
		launcher: ExecLauncher{},
		chat:     cfg.Chat,
		screen:   cfg.Screen,
		timing:   cfg.Timing,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OpenChat starts a new browser window on the chat site and snaps it to the
// left half of the screen.
func (r *Relay) OpenChat(ctx context.Context) error {
	args := append(append([]string(nil), r.chat.BrowserArgs...), r.chat.URL)
	if err := r.launcher.Launch(ctx, r.chat.BrowserPath, args...); err != nil {
		return fmt.Errorf("opening chat: %w", err)
	}
	slog.Debug("Launched chat browser", "path", r.chat.BrowserPath, "url", r.chat.URL)

	if err := utils.Sleep(ctx, r.timing.ChatLaunchSettle); err != nil {
		return err
	}
	if err := r.snapper.Snap(ctx, false); err != nil {
		return fmt.Errorf("snapping chat window: %w", err)
	}
	return nil
}

// Ask types text into the message box, sends it and waits for the reply.
func (r *Relay) Ask(ctx context.Context, text string, wait time.Duration) error {
	if _, err := r.locator.LocateAndClick(ctx, r.screen.SendMessage, image.Point{}); err != nil {
		return fmt.Errorf("focusing message box: %w", err)
	}
	if err := r.desktop.TypeText(text); err != nil {
		return fmt.Errorf("typing prompt: %w", err)
	}
	if err := r.desktop.KeyTap("enter"); err != nil {
		return fmt.Errorf("sending prompt: %w", err)
	}
	slog.Debug("Prompt sent", "chars", len(text), "strategy", r.chat.WaitStrategy)

	if r.chat.WaitStrategy == config.WaitStrategyFixed {
		return r.waitFixed(ctx, wait)
	}
	return r.waitSettled(ctx, wait)
}

func (r *Relay) waitFixed(ctx context.Context, wait time.Duration) error {
	if r.progress == nil {
		return utils.Sleep(ctx, wait)
	}
	return spinner.Countdown(ctx, r.progress, "Waiting for the chat response", wait)
}

// waitSettled samples the response until two consecutive non-empty reads
// agree. Empty reads (nothing selected yet) never count.
func (r *Relay) waitSettled(ctx context.Context, wait time.Duration) error {
	interval := r.chat.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}

	began := time.Now()
	if err := utils.Sleep(ctx, min(interval, wait)); err != nil {
		return err
	}

	var prev, last string
	b := retry.WithMaxDuration(max(wait-time.Since(began), 0), retry.NewConstant(interval))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		text, err := r.ReadResponse(ctx)
		if errors.Is(err, screen.ErrLowConfidence) {
			// reply not rendered yet
			return retry.RetryableError(errUnsettled)
		}
		if err != nil {
			return err
		}
		prev, last = last, strings.TrimSpace(text)
		if last != "" && last == prev {
			return nil
		}
		return retry.RetryableError(errUnsettled)
	})
	if errors.Is(err, errUnsettled) {
		return &ResponseTimeoutError{Waited: time.Since(began).Round(time.Millisecond), Last: last}
	}
	if err != nil {
		return err
	}

	slog.Debug("Chat response settled", "after", time.Since(began).Round(time.Millisecond))
	return nil
}

// ReadResponse selects the latest reply paragraph and returns it via the
// clipboard. The clipboard is emptied before copying, so a copy that
// selected nothing reads back as "" rather than whatever was there before.
func (r *Relay) ReadResponse(ctx context.Context) (string, error) {
	region, err := r.locator.Locate(ctx, r.screen.Response)
	if err != nil {
		return "", fmt.Errorf("locating response: %w", err)
	}

	p := region.Center().Add(image.Pt(r.screen.ResponseSelect.X, r.screen.ResponseSelect.Y))
	if err := r.desktop.MultiClick(p.X, p.Y, 3); err != nil {
		return "", fmt.Errorf("selecting response: %w", err)
	}
	if err := r.desktop.WriteClipboard(""); err != nil {
		return "", fmt.Errorf("clearing clipboard: %w", err)
	}
	if err := r.desktop.KeyTap("c", copyModifier); err != nil {
		return "", fmt.Errorf("copying response: %w", err)
	}
	if err := utils.Sleep(ctx, r.timing.CopySettle); err != nil {
		return "", err
	}

	text, err := r.desktop.ReadClipboard()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	slog.Debug("Read chat response", "text", text, "x", p.X, "y", p.Y)
	return text, nil
}
