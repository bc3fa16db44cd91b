// Package prompt builds the instruction sent to the chat window for a question.
//
// The wording is a contract with the responder: the single-letter,
// no-punctuation instruction is what lets the resolver reduce the reply to
// one slot, so the text must not drift between calls.
package prompt

import (
	"fmt"
	"strings"

	"github.com/spboyer/quizpilot/internal/models"
)

const instruction = "Which answer is the most correct? " +
	"Respond only with a single-letter answer and no punctuation. " +
	"Your answer must be a single-letter; your response cannot be more than 1 character in length."

// Compose returns the prompt for q on the given quiz subject.
func Compose(subject string, q models.Question) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Here is a multiple choice question about %s: %s", subject, q.Prompt)
	if q.HasCode() {
		sb.WriteString(" ")
		sb.WriteString(q.CodeBlock)
	}

	fmt.Fprintf(&sb, " The possible answers are %s) %s, %s) %s, %s) %s, or %s) %s. ",
		models.LetterA, q.Options[0],
		models.LetterB, q.Options[1],
		models.LetterC, q.Options[2],
		models.LetterD, q.Options[3],
	)
	sb.WriteString(instruction)

	return sb.String()
}
