package models

import "fmt"

// EntryKind distinguishes transcript lines.
type EntryKind string

const (
	EntryPrompt EntryKind = "prompt"
	EntryAnswer EntryKind = "answer"
)

// TranscriptEntry is one line of the conversation transcript.
type TranscriptEntry struct {
	Kind EntryKind `json:"kind"`
	Text string    `json:"text"`
}

// PromptEntry records a prompt that was sent to the chat.
func PromptEntry(prompt string) TranscriptEntry {
	return TranscriptEntry{Kind: EntryPrompt, Text: prompt}
}

// AnswerEntry records the chosen slot and its text as "B - answer text".
func AnswerEntry(l Letter, option string) TranscriptEntry {
	return TranscriptEntry{Kind: EntryAnswer, Text: fmt.Sprintf("%s - %s", l, option)}
}
