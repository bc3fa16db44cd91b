// Package session records a quiz run as newline-delimited JSON events and
// renders recorded runs for operators.
package session

import "time"

// EventType identifies the kind of session event.
type EventType string

const (
	EventRunStart       EventType = "run_start"
	EventRunComplete    EventType = "run_complete"
	EventQuizStart      EventType = "quiz_start"
	EventRoundStart     EventType = "round_start"
	EventAnswerSelected EventType = "answer_selected"
	EventError          EventType = "error"
)

// Event is a single timestamped entry in a session log.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]any) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Type:      t,
		Data:      data,
	}
}

// RunStartData returns event data for a run start.
func RunStartData(queued []string, practice bool, rounds int) map[string]any {
	return map[string]any{
		"queued":   queued,
		"practice": practice,
		"rounds":   rounds,
	}
}

// RunCompleteData returns event data for the end of a run.
func RunCompleteData(quiz string, rounds int, transcriptPath string, durationMs int64) map[string]any {
	return map[string]any{
		"quiz":        quiz,
		"rounds":      rounds,
		"transcript":  transcriptPath,
		"duration_ms": durationMs,
	}
}

// QuizStartData returns event data for the quiz that was started.
func QuizStartData(quiz string, practice bool, skipped []string) map[string]any {
	d := map[string]any{
		"quiz":     quiz,
		"practice": practice,
	}
	if len(skipped) > 0 {
		d["skipped"] = skipped
	}
	return d
}

// RoundStartData returns event data for the start of a round.
func RoundStartData(round, total int) map[string]any {
	return map[string]any{
		"round": round,
		"total": total,
	}
}

// AnswerSelectedData returns event data for a resolved and clicked answer.
func AnswerSelectedData(round int, question, raw, letter, option string) map[string]any {
	return map[string]any{
		"round":    round,
		"question": question,
		"response": raw,
		"letter":   letter,
		"option":   option,
	}
}

// ErrorData returns event data for an error.
func ErrorData(message string, details map[string]any) map[string]any {
	d := map[string]any{
		"message": message,
	}
	for k, v := range details {
		d[k] = v
	}
	return d
}
