// Package orchestration runs a quiz: it moves each question from the quiz
// browser through the chat and back, and records the transcript.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spboyer/quizpilot/internal/config"
	"github.com/spboyer/quizpilot/internal/models"
	"github.com/spboyer/quizpilot/internal/prompt"
	"github.com/spboyer/quizpilot/internal/resolver"
	"github.com/spboyer/quizpilot/internal/session"
)

// ErrEmptyQueue is returned when a run is started with no quiz queued.
var ErrEmptyQueue = errors.New("no quiz queued")

// QuizDriver is the quiz browser session.
type QuizDriver interface {
	Login(ctx context.Context, email, password string) error
	OpenQuizSearch(ctx context.Context) error
	StartQuiz(ctx context.Context, quiz string, practice bool) error
	ParseQuestion(ctx context.Context) (models.Question, error)
	SelectAnswer(ctx context.Context, l models.Letter) error
	SubmitAnswer(ctx context.Context, practice bool) error
	Refresh(ctx context.Context) error
}

// ChatRelay is the chat window the questions are asked in.
type ChatRelay interface {
	OpenChat(ctx context.Context) error
	Ask(ctx context.Context, text string, wait time.Duration) error
	ReadResponse(ctx context.Context) (string, error)
}

// WindowSnapper moves the focused window to one half of the screen.
type WindowSnapper interface {
	Snap(ctx context.Context, toRight bool) error
}

// RoundError reports which step of which round failed.
type RoundError struct {
	Round int
	Step  string
	Err   error
}

func (e *RoundError) Error() string {
	return fmt.Sprintf("round %d: %s: %v", e.Round, e.Step, e.Err)
}

func (e *RoundError) Unwrap() error {
	return e.Err
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

const (
	EventQuizStart      EventType = "quiz_start"
	EventRoundStart     EventType = "round_start"
	EventPromptSent     EventType = "prompt_sent"
	EventAnswerSelected EventType = "answer_selected"
	EventRunComplete    EventType = "run_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType   EventType
	Quiz        string
	Round       int
	TotalRounds int
	Letter      models.Letter
	Details     map[string]any
}

// Result is the outcome of a completed run.
type Result struct {
	Quiz           string
	Skipped        []string
	Rounds         []Round
	TranscriptPath string
	Duration       time.Duration
}

// Runner drives a quiz run end to end.
type Runner struct {
	cfg     *config.Config
	driver  QuizDriver
	chat    ChatRelay
	snapper WindowSnapper
	events  session.Logger

	progressMu sync.Mutex
	listeners  []ProgressListener
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithEventLog records run events to l.
func WithEventLog(l session.Logger) RunnerOption {
	return func(r *Runner) {
		r.events = l
	}
}

// NewRunner creates a Runner over the given collaborators.
func NewRunner(cfg *config.Config, driver QuizDriver, chat ChatRelay, snapper WindowSnapper, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:     cfg,
		driver:  driver,
		chat:    chat,
		snapper: snapper,
		events:  session.NopLogger{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := append([]ProgressListener(nil), r.listeners...)
	r.progressMu.Unlock()
	for _, l := range listeners {
		l(event)
	}
}

func (r *Runner) logEvent(t session.EventType, data map[string]any) {
	if err := r.events.Log(session.NewEvent(t, data)); err != nil {
		slog.Warn("Failed to write session event", "type", t, "error", err)
	}
}

// Run takes the quiz at the front of queue. Only one quiz is taken per run;
// the rest of the queue is reported as skipped. Any failure aborts the run.
func (r *Runner) Run(ctx context.Context, queue *Queue) (*Result, error) {
	started := time.Now()

	quiz, ok := queue.Pop()
	if !ok {
		return nil, ErrEmptyQueue
	}
	skipped := queue.Remaining()
	if len(skipped) > 0 {
		slog.Warn("Only one quiz is taken per run, skipping the rest", "quiz", quiz, "skipped", skipped)
	}

	sess := NewSession(r.cfg, quiz)
	r.logEvent(session.EventRunStart, session.RunStartData(append([]string{quiz}, skipped...), sess.Practice, sess.Rounds))

	res, err := r.run(ctx, sess)
	if err != nil {
		r.logEvent(session.EventError, session.ErrorData(err.Error(), map[string]any{
			"quiz":             quiz,
			"rounds_completed": len(sess.History),
		}))
		return nil, err
	}

	res.Skipped = skipped
	res.Duration = time.Since(started)
	r.logEvent(session.EventRunComplete, session.RunCompleteData(quiz, len(res.Rounds), res.TranscriptPath, res.Duration.Milliseconds()))
	r.notifyProgress(ProgressEvent{
		EventType:   EventRunComplete,
		Quiz:        quiz,
		Round:       len(res.Rounds),
		TotalRounds: sess.Rounds,
		Details:     map[string]any{"transcript": res.TranscriptPath},
	})
	return res, nil
}

func (r *Runner) run(ctx context.Context, sess *Session) (*Result, error) {
	// The quiz browser has focus right after launch.
	if err := r.snapper.Snap(ctx, true); err != nil {
		return nil, fmt.Errorf("snapping quiz window: %w", err)
	}
	if err := r.chat.OpenChat(ctx); err != nil {
		return nil, err
	}

	creds := r.cfg.Credentials
	if err := r.driver.Login(ctx, creds.Email, creds.Password); err != nil {
		return nil, err
	}
	if err := r.driver.OpenQuizSearch(ctx); err != nil {
		return nil, err
	}
	if err := r.driver.StartQuiz(ctx, sess.Quiz, sess.Practice); err != nil {
		return nil, err
	}

	r.logEvent(session.EventQuizStart, session.QuizStartData(sess.Quiz, sess.Practice, nil))
	r.notifyProgress(ProgressEvent{EventType: EventQuizStart, Quiz: sess.Quiz, TotalRounds: sess.Rounds})

	for n := 1; n <= sess.Rounds; n++ {
		round, err := r.playRound(ctx, sess, n)
		if err != nil {
			return nil, err
		}
		sess.History = append(sess.History, round)
	}

	path, err := sess.Transcript.Flush()
	if err != nil {
		return nil, err
	}
	slog.Info("Transcript written", "path", path, "entries", sess.Transcript.Len())

	return &Result{Quiz: sess.Quiz, Rounds: sess.History, TranscriptPath: path}, nil
}

// playRound moves one question from the quiz to the chat and back.
func (r *Runner) playRound(ctx context.Context, sess *Session, n int) (Round, error) {
	round := Round{Number: n}
	fail := func(step string, err error) (Round, error) {
		return round, &RoundError{Round: n, Step: step, Err: err}
	}

	r.logEvent(session.EventRoundStart, session.RoundStartData(n, sess.Rounds))
	r.notifyProgress(ProgressEvent{EventType: EventRoundStart, Quiz: sess.Quiz, Round: n, TotalRounds: sess.Rounds})

	q, err := r.driver.ParseQuestion(ctx)
	if err != nil {
		return fail("parse question", err)
	}
	round.Question = q
	round.Prompt = prompt.Compose(sess.Quiz, q)

	if err := r.chat.Ask(ctx, round.Prompt, sess.Config.Timing.ResponseWait); err != nil {
		return fail("ask", err)
	}
	r.notifyProgress(ProgressEvent{EventType: EventPromptSent, Quiz: sess.Quiz, Round: n, TotalRounds: sess.Rounds})

	round.Response, err = r.chat.ReadResponse(ctx)
	if err != nil {
		return fail("read response", err)
	}

	round.Letter, err = resolver.Resolve(round.Response)
	if err != nil {
		return fail("resolve answer", err)
	}
	round.Option, err = q.Option(round.Letter)
	if err != nil {
		return fail("resolve answer", err)
	}

	if err := r.driver.SelectAnswer(ctx, round.Letter); err != nil {
		return fail("select answer", err)
	}
	if err := r.driver.SubmitAnswer(ctx, sess.Practice); err != nil {
		return fail("submit answer", err)
	}

	if err := sess.Transcript.Append(round.Entries()...); err != nil {
		return fail("record transcript", err)
	}
	r.logEvent(session.EventAnswerSelected, session.AnswerSelectedData(n, q.Prompt, round.Response, round.Letter.String(), round.Option))
	r.notifyProgress(ProgressEvent{
		EventType:   EventAnswerSelected,
		Quiz:        sess.Quiz,
		Round:       n,
		TotalRounds: sess.Rounds,
		Letter:      round.Letter,
		Details:     map[string]any{"option": round.Option},
	})

	if err := r.driver.Refresh(ctx); err != nil {
		return fail("refresh", err)
	}
	return round, nil
}
