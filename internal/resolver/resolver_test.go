package resolver

import (
	"errors"
	"testing"

	"github.com/spboyer/quizpilot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.Letter
	}{
		{name: "bare letter", raw: "C", want: models.LetterC},
		{name: "trailing period", raw: "A.", want: models.LetterA},
		{name: "lower case", raw: "d", want: models.LetterD},
		{name: "quoted sentence", raw: `"The answer is B"`, want: models.LetterB},
		{name: "sentence with period", raw: "The correct answer is D.", want: models.LetterD},
		{name: "newline after letter", raw: "A\n", want: models.LetterA},
		{name: "pronoun before letter", raw: "I would choose C", want: models.LetterC},
		{name: "curly quotes", raw: "“B”", want: models.LetterB},
		{name: "first qualifying token wins", raw: "B or maybe C", want: models.LetterB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Failure(t *testing.T) {
	for _, raw := range []string{
		"The answer is Option Two",
		"",
		"   ",
		"E",
		"I think so",
		"AB",
	} {
		t.Run(raw, func(t *testing.T) {
			got, err := Resolve(raw)
			require.Error(t, err)
			assert.Empty(t, got)

			var resErr *ResolutionError
			require.True(t, errors.As(err, &resErr))
			assert.Equal(t, raw, resErr.Raw)
		})
	}
}
