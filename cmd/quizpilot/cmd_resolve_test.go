package main

import (
	"bytes"
	"testing"

	"github.com/spboyer/quizpilot/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"A."}, "A\n"},
		{[]string{`"The answer is B"`}, "B\n"},
		{[]string{"I", "think", "c"}, "C\n"},
	}

	for _, tt := range tests {
		t.Run(tt.want[:1], func(t *testing.T) {
			var buf bytes.Buffer
			cmd := newResolveCommand()
			cmd.SetOut(&buf)
			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestResolveCommand_NoLetter(t *testing.T) {
	cmd := newResolveCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"The answer is Option Two"})

	var resErr *resolver.ResolutionError
	require.ErrorAs(t, cmd.Execute(), &resErr)
}
