package hooks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHook(t *testing.T) {
	// Determine a portable true/false command
	trueCmd := "true"
	falseCmd := "false"
	if runtime.GOOS == "windows" {
		trueCmd = "cmd /c exit 0"
		falseCmd = "cmd /c exit 1"
	}

	tests := []struct {
		name      string
		hook      Hook
		wantErr   bool
		errSubstr string
	}{
		{
			name: "happy path - command succeeds",
			hook: Hook{Command: trueCmd},
		},
		{
			name:      "empty command returns error",
			hook:      Hook{Command: ""},
			wantErr:   true,
			errSubstr: "empty command",
		},
		{
			name:      "whitespace-only command returns error",
			hook:      Hook{Command: "   "},
			wantErr:   true,
			errSubstr: "empty command",
		},
		{
			name:      "non-zero exit with error_on_fail true returns error",
			hook:      Hook{Command: falseCmd, ErrorOnFail: true},
			wantErr:   true,
			errSubstr: "exited with code 1",
		},
		{
			name: "non-zero exit with error_on_fail false continues",
			hook: Hook{Command: falseCmd},
		},
		{
			name: "custom acceptable exit codes",
			hook: Hook{Command: falseCmd, ExitCodes: []int{1}, ErrorOnFail: true},
		},
		{
			name:      "zero exit not in acceptable codes",
			hook:      Hook{Command: trueCmd, ExitCodes: []int{3}, ErrorOnFail: true},
			wantErr:   true,
			errSubstr: "exited with code 0",
		},
		{
			name:    "missing binary with error_on_fail",
			hook:    Hook{Command: "quizpilot-no-such-binary", ErrorOnFail: true},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := &Runner{}
			err := r.runHook(context.Background(), "test", 0, tc.hook)

			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tc.errSubstr != "" {
				assert.Contains(t, err.Error(), tc.errSubstr)
			}
		})
	}
}

func TestRunHook_OutputAndEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "hook.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"quiz=$QUIZPILOT_QUIZ\"\n"), 0o755))

	var out bytes.Buffer
	r := &Runner{Output: &out, Env: []string{"QUIZPILOT_QUIZ=Go"}}
	require.NoError(t, r.Execute(context.Background(), "after_run", []Hook{{Command: script}}))

	assert.Equal(t, "[hook:after_run] quiz=Go\n", out.String())
}

func TestExecute_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	r := &Runner{}
	err := r.Execute(ctx, "test", []Hook{{Command: "echo hello"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

func TestExecute_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Millisecond)
	defer cancel()
	time.Sleep(5 * time.Millisecond) // ensure timeout fires

	r := &Runner{}
	require.Error(t, r.Execute(ctx, "test", []Hook{{Command: "echo hello"}}))
}
