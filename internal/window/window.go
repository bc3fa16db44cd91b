// Package window snaps the foreground application window to one half of the
// screen with the operating system's window-management hotkeys.
package window

import (
	"context"
	"fmt"
	"time"

	"github.com/spboyer/quizpilot/internal/desktop"
	"github.com/spboyer/quizpilot/internal/utils"
)

const (
	// DefaultModifier is the key held for the snap hotkeys. robotgo maps
	// "cmd" to the Windows key on Windows.
	DefaultModifier = "cmd"

	// DefaultSettle is the pause between the restore toggles and the snap.
	DefaultSettle = 50 * time.Millisecond
)

// Positioner issues snap hotkeys against whichever window has focus.
type Positioner struct {
	desktop  desktop.Desktop
	modifier string
	settle   time.Duration
}

// NewPositioner returns a Positioner. An empty modifier or a zero settle
// falls back to the defaults.
func NewPositioner(d desktop.Desktop, modifier string, settle time.Duration) *Positioner {
	if modifier == "" {
		modifier = DefaultModifier
	}
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Positioner{desktop: d, modifier: modifier, settle: settle}
}

// Snap maximizes then snaps the focused window to the right half when toRight
// is true, otherwise to the left half.
//
// The maximize toggle is sent twice on purpose: on multi-monitor setups the
// first press sometimes only restores the window.
func (p *Positioner) Snap(ctx context.Context, toRight bool) error {
	for i := 0; i < 2; i++ {
		if err := p.desktop.KeyTap("up", p.modifier); err != nil {
			return fmt.Errorf("maximizing window: %w", err)
		}
	}

	if err := utils.Sleep(ctx, p.settle); err != nil {
		return err
	}

	direction := "left"
	if toRight {
		direction = "right"
	}
	if err := p.desktop.KeyTap(direction, p.modifier); err != nil {
		return fmt.Errorf("snapping window %s: %w", direction, err)
	}
	return nil
}
