package orchestration

import (
	"github.com/spboyer/quizpilot/internal/config"
	"github.com/spboyer/quizpilot/internal/models"
	"github.com/spboyer/quizpilot/internal/transcript"
)

// Session is the state of one quiz run, passed explicitly to every round.
type Session struct {
	Config     *config.Config
	Quiz       string
	Practice   bool
	Rounds     int
	Transcript *transcript.Recorder

	// History holds the completed rounds in order.
	History []Round
}

// NewSession starts a session for quiz using the mode and round count in cfg.
func NewSession(cfg *config.Config, quiz string) *Session {
	return &Session{
		Config:     cfg,
		Quiz:       quiz,
		Practice:   cfg.IsPractice(),
		Rounds:     cfg.RoundCount(),
		Transcript: transcript.NewRecorder(cfg.Transcript.Dir, quiz, cfg.IsIncremental()),
	}
}

// Round is what happened to one question.
type Round struct {
	Number   int
	Question models.Question
	Prompt   string
	Response string
	Letter   models.Letter
	Option   string
}

// Entries returns the transcript lines of the round.
func (r Round) Entries() []models.TranscriptEntry {
	return []models.TranscriptEntry{
		models.PromptEntry(r.Prompt),
		models.AnswerEntry(r.Letter, r.Option),
	}
}
