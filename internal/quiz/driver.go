// Package quiz drives the assessment site in an automated browser: login,
// quiz search, question extraction and answer submission.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/spboyer/quizpilot/internal/config"
	"github.com/spboyer/quizpilot/internal/models"
	"github.com/spboyer/quizpilot/internal/screen"
	"github.com/spboyer/quizpilot/internal/utils"
	"github.com/spboyer/quizpilot/internal/verify"
)

// State is the driver's position in the site navigation.
type State string

const (
	StateLoggedOut         State = "logged_out"
	StateLoggingIn         State = "logging_in"
	StateQuizSearch        State = "quiz_search"
	StateQuizModalOpen     State = "quiz_modal_open"
	StateQuestionDisplayed State = "question_displayed"
	StateAnswerSubmitted   State = "answer_submitted"
)

// Clicker locates a reference image on screen and clicks it.
type Clicker interface {
	LocateAndClick(ctx context.Context, name string, offset image.Point) (image.Point, error)
}

// Driver owns the authenticated quiz browser session.
type Driver struct {
	page     browserPage
	contract config.PageContract
	timing   config.TimingConfig
	images   config.ScreenConfig
	locator  Clicker
	gate     verify.Gate

	state State
	// slots holds the answer selectors of the question on screen, in A-D
	// order. It is nil until ParseQuestion succeeds.
	slots []string
}

func newDriver(page browserPage, cfg *config.Config, locator Clicker, gate verify.Gate) *Driver {
	return &Driver{
		page:     page,
		contract: cfg.Page,
		timing:   cfg.Timing,
		images:   cfg.Screen,
		locator:  locator,
		gate:     gate,
		state:    StateLoggedOut,
	}
}

// State returns the current navigation state.
func (d *Driver) State() State {
	return d.state
}

func (d *Driver) require(op string, allowed ...State) error {
	for _, s := range allowed {
		if d.state == s {
			return nil
		}
	}
	return &InvalidStateError{Op: op, State: d.state}
}

// Login opens the home page and submits the credentials. Missing form fields
// mean the layout changed or the browser profile is already signed in.
func (d *Driver) Login(ctx context.Context, email, password string) error {
	if err := d.require("log in", StateLoggedOut); err != nil {
		return err
	}

	if err := d.page.Goto(d.contract.HomeURL); err != nil {
		return fmt.Errorf("opening %s: %w", d.contract.HomeURL, err)
	}

	for _, field := range []struct{ selector, value string }{
		{d.contract.EmailField, email},
		{d.contract.PasswordField, password},
	} {
		n, err := d.page.Count(field.selector)
		if err != nil {
			return pageErr("login", field.selector, err)
		}
		if n == 0 {
			return &ElementNotFoundError{Step: "login", Selector: field.selector}
		}
		if err := d.page.Fill(field.selector, field.value); err != nil {
			return pageErr("login", field.selector, err)
		}
	}

	if err := d.page.Click(d.contract.LoginButton, d.timing.ElementTimeout); err != nil {
		return pageErr("login", d.contract.LoginButton, err)
	}

	slog.Debug("Submitted login form", "url", d.contract.HomeURL)
	d.state = StateLoggingIn
	return nil
}

// OpenQuizSearch gets past the post-login identity challenge and opens the
// assessments page. The operator completes the challenge by hand; the gate
// decides how long to block.
func (d *Driver) OpenQuizSearch(ctx context.Context) error {
	if err := d.require("open quiz search", StateLoggingIn); err != nil {
		return err
	}

	if err := utils.Sleep(ctx, d.timing.VerificationPopup); err != nil {
		return err
	}

	_, err := d.locator.LocateAndClick(ctx, d.images.VerifyButton, image.Point{})
	switch {
	case errors.Is(err, screen.ErrLowConfidence):
		slog.Info("No verification prompt found, continuing", "error", err)
	case err != nil:
		return fmt.Errorf("dismissing verification prompt: %w", err)
	default:
		if err := d.gate.Wait(ctx, "Finish the verification challenge in the quiz browser. Done?"); err != nil {
			return err
		}
	}

	if err := d.page.Goto(d.contract.AssessmentsURL); err != nil {
		return fmt.Errorf("opening %s: %w", d.contract.AssessmentsURL, err)
	}

	d.state = StateQuizSearch
	return nil
}

// StartQuiz searches for quiz by name and starts it in practice or graded mode.
func (d *Driver) StartQuiz(ctx context.Context, quiz string, practice bool) error {
	if err := d.require("start quiz", StateQuizSearch); err != nil {
		return err
	}

	if err := d.page.Click(d.contract.SearchBox, d.timing.ElementTimeout); err != nil {
		return pageErr("quiz search", d.contract.SearchBox, err)
	}
	if err := utils.Sleep(ctx, d.timing.TypingPause); err != nil {
		return err
	}
	if err := d.page.Type(quiz); err != nil {
		return fmt.Errorf("typing quiz name: %w", err)
	}
	if err := utils.Sleep(ctx, d.timing.SearchSettle); err != nil {
		return err
	}

	offset := image.Pt(d.images.SearchResultOffset.X, d.images.SearchResultOffset.Y)
	if _, err := d.locator.LocateAndClick(ctx, d.images.SkillSearch, offset); err != nil {
		return fmt.Errorf("selecting search result for %q: %w", quiz, err)
	}
	d.state = StateQuizModalOpen

	buttons := []string{d.contract.StartButton}
	if practice {
		buttons = []string{d.contract.PracticeButton, d.contract.PracticeNextButton}
	}
	for _, b := range buttons {
		if err := d.page.Click(b, d.timing.ElementTimeout); err != nil {
			return pageErr("start quiz", b, err)
		}
	}

	if err := utils.Sleep(ctx, d.timing.StartSettle); err != nil {
		return err
	}

	slog.Debug("Quiz started", "quiz", quiz, "practice", practice)
	d.state = StateQuestionDisplayed
	return nil
}

// ParseQuestion reads the prompt, the optional code block and the four
// answer texts of the question on screen.
func (d *Driver) ParseQuestion(ctx context.Context) (models.Question, error) {
	if err := d.require("parse question", StateQuestionDisplayed); err != nil {
		return models.Question{}, err
	}
	d.slots = nil

	var q models.Question

	text, err := d.page.InnerText(d.contract.QuestionText, d.timing.ElementTimeout)
	if err != nil {
		return q, pageErr("parse question", d.contract.QuestionText, err)
	}
	q.Prompt = models.FirstLine(text)

	if d.contract.CodeBlock != "" {
		n, err := d.page.Count(d.contract.CodeBlock)
		if err != nil {
			return q, pageErr("parse question", d.contract.CodeBlock, err)
		}
		if n > 0 {
			code, err := d.page.InnerText(d.contract.CodeBlock, d.timing.ElementTimeout)
			if err != nil {
				return q, pageErr("parse question", d.contract.CodeBlock, err)
			}
			q.CodeBlock = models.CollapseLines(code)
		}
	}

	if err := utils.Sleep(ctx, d.timing.QuestionSettle); err != nil {
		return q, err
	}

	slots := make([]string, models.SlotCount)
	for i := range models.SlotCount {
		sel := d.contract.AnswerSelector(i)
		option, err := d.page.InnerText(sel, d.timing.ElementTimeout)
		if err != nil {
			return q, pageErr("parse question", sel, err)
		}
		q.Options[i] = models.CollapseLines(option)
		slots[i] = sel
	}
	d.slots = slots

	slog.Debug("Parsed question", "prompt", q.Prompt, "has_code", q.HasCode())
	return q, nil
}

// SelectAnswer clicks the option in the slot named by l. Slot A is always
// the first option element and D the fourth.
func (d *Driver) SelectAnswer(ctx context.Context, l models.Letter) error {
	if err := d.require("select answer", StateQuestionDisplayed); err != nil {
		return err
	}
	if d.slots == nil {
		return &InvalidStateError{Op: "select answer before parsing the question", State: d.state}
	}

	i, err := l.Index()
	if err != nil {
		return err
	}

	if err := d.page.DispatchClick(d.slots[i]); err != nil {
		return pageErr("select answer", d.slots[i], err)
	}
	slog.Debug("Selected answer", "letter", l, "selector", d.slots[i])
	return nil
}

// SubmitAnswer presses the footer button once, or twice in practice mode
// where the first press only reveals whether the answer was right.
func (d *Driver) SubmitAnswer(ctx context.Context, practice bool) error {
	if err := d.require("submit answer", StateQuestionDisplayed); err != nil {
		return err
	}

	if err := d.page.Click(d.contract.SubmitButton, d.timing.ElementTimeout); err != nil {
		return pageErr("submit answer", d.contract.SubmitButton, err)
	}
	if practice {
		if err := utils.Sleep(ctx, d.timing.SubmitPause); err != nil {
			return err
		}
		if err := d.page.Click(d.contract.SubmitButton, d.timing.ElementTimeout); err != nil {
			return pageErr("advance question", d.contract.SubmitButton, err)
		}
	}

	d.state = StateAnswerSubmitted
	return nil
}

// Refresh reloads the page and waits for the next question to settle.
func (d *Driver) Refresh(ctx context.Context) error {
	if err := d.require("refresh", StateAnswerSubmitted, StateQuestionDisplayed); err != nil {
		return err
	}

	if err := d.page.Reload(); err != nil {
		return fmt.Errorf("reloading quiz page: %w", err)
	}
	if err := utils.Sleep(ctx, d.timing.RefreshSettle); err != nil {
		return err
	}

	d.slots = nil
	d.state = StateQuestionDisplayed
	return nil
}

// Close shuts the browser down.
func (d *Driver) Close() error {
	return d.page.Close()
}
