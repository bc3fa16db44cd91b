package chat

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// Launcher starts an external program and returns once it is running.
type Launcher interface {
	Launch(ctx context.Context, name string, args ...string) error
}

// ExecLauncher starts programs as detached child processes. The chat
// browser outlives the call that started it, so the context only guards the
// start itself.
type ExecLauncher struct{}

func (ExecLauncher) Launch(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("Chat browser exited", "path", name, "error", err)
		}
	}()
	return nil
}
