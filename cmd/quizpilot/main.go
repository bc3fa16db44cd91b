package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Quiz completed and transcript written
	ExitRunAborted = 1 // No usable answer, or the operator stopped the run
	ExitError      = 2 // Configuration or runtime error
)

// RunAbortedError means the run stopped on purpose rather than because
// something broke: the chat reply had no answer letter or the operator
// declined to continue.
type RunAbortedError struct {
	Reason string
	Err    error
}

func (e *RunAbortedError) Error() string {
	if e.Err == nil {
		return "run aborted: " + e.Reason
	}
	return fmt.Sprintf("run aborted: %s: %v", e.Reason, e.Err)
}

func (e *RunAbortedError) Unwrap() error {
	return e.Err
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var aborted *RunAbortedError
	if errors.As(err, &aborted) {
		return ExitRunAborted
	}
	return ExitError
}
