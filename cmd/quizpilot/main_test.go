package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunAbortedError(t *testing.T) {
	err := &RunAbortedError{Reason: "interrupted"}
	assert.Equal(t, "run aborted: interrupted", err.Error())

	cause := errors.New("boom")
	err = &RunAbortedError{Reason: "verification not completed", Err: cause}
	assert.Equal(t, "run aborted: verification not completed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitSuccess},
		{"aborted", &RunAbortedError{Reason: "x"}, ExitRunAborted},
		{"wrapped aborted", fmt.Errorf("run: %w", &RunAbortedError{Reason: "x"}), ExitRunAborted},
		{"joined aborted", errors.Join(&RunAbortedError{Reason: "x"}, errors.New("more")), ExitRunAborted},
		{"regular error", errors.New("config error"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"run", "init", "resolve", "prompt", "locate", "session"} {
		cmd, _, err := root.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, cmd.Name())
		}
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
}
