package models

import (
	"fmt"
	"strings"
)

// Letter is an answer slot label.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// SlotCount is the number of answer options every question carries.
const SlotCount = 4

// Letters lists the slot labels in page order. Slot i is always Letters[i].
var Letters = [SlotCount]Letter{LetterA, LetterB, LetterC, LetterD}

// InvalidLetterError is returned when a letter does not name one of the four slots.
type InvalidLetterError struct {
	Letter Letter
}

func (e *InvalidLetterError) Error() string {
	return fmt.Sprintf("%q is not an answer slot (want one of A, B, C, D)", string(e.Letter))
}

// ParseLetter accepts a single upper or lower case slot letter.
func ParseLetter(s string) (Letter, error) {
	l := Letter(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := l.Index(); err != nil {
		return "", err
	}
	return l, nil
}

// Index maps the letter to its zero-based slot.
func (l Letter) Index() (int, error) {
	for i, candidate := range Letters {
		if candidate == l {
			return i, nil
		}
	}
	return -1, &InvalidLetterError{Letter: l}
}

// Valid reports whether l is one of A-D.
func (l Letter) Valid() bool {
	_, err := l.Index()
	return err == nil
}

func (l Letter) String() string { return string(l) }

// Question is one quiz question as read from the page. It is rebuilt for
// every round and never updated in place.
type Question struct {
	Prompt    string
	CodeBlock string
	Options   [SlotCount]string
}

// HasCode reports whether the question carries a code block.
func (q Question) HasCode() bool {
	return strings.TrimSpace(q.CodeBlock) != ""
}

// Option returns the answer text shown in the slot for l.
func (q Question) Option(l Letter) (string, error) {
	i, err := l.Index()
	if err != nil {
		return "", err
	}
	return q.Options[i], nil
}

// CollapseLines joins multi-line element text into a single line.
func CollapseLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	return strings.Join(lines, " ")
}

// FirstLine returns the trimmed first line of s.
func FirstLine(s string) string {
	first, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(first)
}
