// Package spinner draws single-line progress indicators on a terminal.
package spinner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const frameInterval = 80 * time.Millisecond

// Start displays an animated spinner with the given message on w.
// Call the returned function to stop the spinner and clear the line.
func Start(w io.Writer, message string) (stop func()) {
	return start(w, func(time.Duration) string { return message })
}

// Countdown shows message with the time left until d has elapsed and
// returns when it has, or when ctx is done.
func Countdown(ctx context.Context, w io.Writer, message string, d time.Duration) error {
	deadline := time.Now().Add(d)
	stop := start(w, func(time.Duration) string {
		left := time.Until(deadline).Round(time.Second)
		if left < 0 {
			left = 0
		}
		return fmt.Sprintf("%s (%s)", message, left)
	})
	defer stop()

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func start(w io.Writer, label func(elapsed time.Duration) string) (stop func()) {
	done := make(chan struct{})
	cleared := make(chan struct{})
	var stopOnce sync.Once
	began := time.Now()
	go func() {
		i := 0
		width := 0
		for {
			select {
			case <-done:
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", width+2)) //nolint:errcheck
				close(cleared)
				return
			case <-time.After(frameInterval):
				text := label(time.Since(began))
				// pad over the previous frame when the label shrinks
				pad := max(width-runewidth.StringWidth(text), 0)
				width = max(width, runewidth.StringWidth(text))
				fmt.Fprintf(w, "\r%s %s%s", frames[i%len(frames)], text, strings.Repeat(" ", pad)) //nolint:errcheck
				i++
			}
		}
	}()
	return func() {
		stopOnce.Do(func() {
			close(done)
		})
		<-cleared
	}
}
