package prompt

import (
	"strings"
	"testing"

	"github.com/spboyer/quizpilot/internal/models"
	"github.com/stretchr/testify/assert"
)

func sampleQuestion() models.Question {
	return models.Question{
		Prompt:  "What is the zero value of a slice?",
		Options: [models.SlotCount]string{"nil", "[]", "0", "undefined"},
	}
}

func TestCompose_WithoutCode(t *testing.T) {
	got := Compose("Go (Programming Language)", sampleQuestion())

	want := "Here is a multiple choice question about Go (Programming Language): What is the zero value of a slice? " +
		"The possible answers are A) nil, B) [], C) 0, or D) undefined. " +
		"Which answer is the most correct? Respond only with a single-letter answer and no punctuation. " +
		"Your answer must be a single-letter; your response cannot be more than 1 character in length."
	assert.Equal(t, want, got)
}

func TestCompose_EmbedsCodeBlockVerbatim(t *testing.T) {
	q := sampleQuestion()
	q.CodeBlock = "var s []int fmt.Println(s == nil)"

	got := Compose("Go", q)

	assert.Contains(t, got, "What is the zero value of a slice? var s []int fmt.Println(s == nil) The possible answers")
}

func TestCompose_Deterministic(t *testing.T) {
	q := sampleQuestion()
	q.CodeBlock = "x := 1"

	first := Compose("Go", q)
	for range 10 {
		assert.Equal(t, first, Compose("Go", q))
	}
}

func TestCompose_AlwaysInstructsSingleLetter(t *testing.T) {
	for _, code := range []string{"", "print(1)"} {
		q := sampleQuestion()
		q.CodeBlock = code
		got := Compose("Python", q)

		assert.True(t, strings.HasSuffix(got, instruction))
		assert.Contains(t, got, "single-letter answer and no punctuation")
		for _, l := range models.Letters {
			assert.Contains(t, got, string(l)+") ")
		}
	}
}
