package config

import (
	"errors"
	"fmt"
	"strings"
)

// PageContractVersion is the page layout revision the defaults describe.
// Bump it whenever a default selector changes.
const PageContractVersion = 1

// PageContract lists every URL and selector the quiz driver depends on.
// Selectors use Playwright syntax; prefix XPath expressions with "xpath=".
type PageContract struct {
	Version int `yaml:"version,omitempty"`

	HomeURL        string `yaml:"home_url,omitempty"`
	AssessmentsURL string `yaml:"assessments_url,omitempty"`

	EmailField    string `yaml:"email_field,omitempty"`
	PasswordField string `yaml:"password_field,omitempty"`
	LoginButton   string `yaml:"login_button,omitempty"`

	SearchBox          string `yaml:"search_box,omitempty"`
	PracticeButton     string `yaml:"practice_button,omitempty"`
	StartButton        string `yaml:"start_button,omitempty"`
	PracticeNextButton string `yaml:"practice_next_button,omitempty"`

	QuestionText string `yaml:"question_text,omitempty"`
	CodeBlock    string `yaml:"code_block,omitempty"`
	// AnswerOption is a format string taking the zero-based slot index.
	AnswerOption string `yaml:"answer_option,omitempty"`
	SubmitButton string `yaml:"submit_button,omitempty"`
}

// DefaultPageContract returns the selectors for the current assessment pages.
func DefaultPageContract() PageContract {
	return PageContract{
		Version:        PageContractVersion,
		HomeURL:        "https://www.linkedin.com",
		AssessmentsURL: "https://www.linkedin.com/skill-assessments/",

		EmailField:    `[name="session_key"]`,
		PasswordField: `[name="session_password"]`,
		LoginButton:   "xpath=/html/body/main/section[1]/div/div/form[1]/div[2]/button",

		SearchBox:          ".search-basic-typeahead",
		PracticeButton:     "xpath=//*[@title='Practice']",
		StartButton:        "xpath=//*[@title='Start']",
		PracticeNextButton: "xpath=/html/body/div[3]/div/div/div[2]/section/footer/div/button[2]/span",

		QuestionText: ".sa-assessment-quiz__multi-line",
		CodeBlock:    "xpath=/html/body/div[5]/div[3]/div[2]/div/div/main/div/section/div[1]/div[1]/div/p/span[1]",
		AnswerOption: "#skill-assessment-quiz-%d",
		SubmitButton: "xpath=/html/body/div[5]/div[3]/div[2]/div/div/main/div/section/footer/div/button/span",
	}
}

// AnswerSelector returns the selector for the zero-based answer slot.
func (p PageContract) AnswerSelector(slot int) string {
	return fmt.Sprintf(p.AnswerOption, slot)
}

// Validate reports empty selectors and a malformed answer pattern.
func (p PageContract) Validate() error {
	required := map[string]string{
		"home_url":             p.HomeURL,
		"assessments_url":      p.AssessmentsURL,
		"email_field":          p.EmailField,
		"password_field":       p.PasswordField,
		"login_button":         p.LoginButton,
		"search_box":           p.SearchBox,
		"practice_button":      p.PracticeButton,
		"start_button":         p.StartButton,
		"practice_next_button": p.PracticeNextButton,
		"question_text":        p.QuestionText,
		"answer_option":        p.AnswerOption,
		"submit_button":        p.SubmitButton,
	}

	var missing []string
	for _, key := range sortedKeys(required) {
		if strings.TrimSpace(required[key]) == "" {
			missing = append(missing, key)
		}
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("page contract is missing: %s", strings.Join(missing, ", ")))
	}
	if p.AnswerOption != "" && strings.Count(p.AnswerOption, "%d") != 1 {
		errs = append(errs, fmt.Errorf("page answer_option %q must contain exactly one %%d", p.AnswerOption))
	}
	return errors.Join(errs...)
}
