// Package config provides the Config struct and loader for .quizpilot.yaml
// files, environment overrides and the quiz page contract.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/spboyer/quizpilot/internal/hooks"
	"github.com/spboyer/quizpilot/internal/utils"
)

// FileName is the project configuration file looked up from the working directory.
const FileName = ".quizpilot.yaml"

// Default values. New() references them and no other code should duplicate them.
const (
	DefaultPracticeRounds = 2
	DefaultGradedRounds   = 15

	DefaultResponseWait      = 30 * time.Second
	DefaultElementTimeout    = 10 * time.Second
	DefaultVerificationPopup = 7 * time.Second
	DefaultVerificationWait  = 10 * time.Second
	DefaultTypingPause       = 500 * time.Millisecond
	DefaultSearchSettle      = time.Second
	DefaultStartSettle       = 3 * time.Second
	DefaultQuestionSettle    = time.Second
	DefaultSubmitPause       = 500 * time.Millisecond
	DefaultRefreshSettle     = 3 * time.Second
	DefaultChatLaunchSettle  = time.Second
	DefaultCopySettle        = 10 * time.Millisecond
	DefaultSnapSettle        = 50 * time.Millisecond
	DefaultPollInterval      = 2 * time.Second

	DefaultChatURL      = "https://chat.openai.com"
	DefaultBrowserPath  = "firefox"
	DefaultBrowser      = "firefox"
	DefaultSnapModifier = "cmd"

	WaitStrategyPoll  = "poll"
	WaitStrategyFixed = "fixed"

	DefaultImagesDir     = "images"
	DefaultTranscriptDir = "."

	DefaultVerifyButtonImage = "verify_button_linkedin.png"
	DefaultSkillSearchImage  = "linkedin_skill_search.png"
	DefaultSendMessageImage  = "send_a_message.png"
	DefaultResponseImage     = "response.png"
)

// Point is a pixel offset.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// QuizConfig selects what to take and how.
type QuizConfig struct {
	Names    []string `yaml:"names,omitempty"`
	Practice *bool    `yaml:"practice,omitempty"`
	// Rounds overrides the per-mode question count when non-zero.
	Rounds int `yaml:"rounds,omitempty"`
}

// Credentials are never read from or written to the YAML file.
type Credentials struct {
	Email    string
	Password string
}

// TimingConfig holds every fixed pause the run relies on.
type TimingConfig struct {
	ResponseWait      time.Duration `yaml:"response_wait,omitempty"`
	ElementTimeout    time.Duration `yaml:"element_timeout,omitempty"`
	VerificationPopup time.Duration `yaml:"verification_popup,omitempty"`
	VerificationWait  time.Duration `yaml:"verification_wait,omitempty"`
	TypingPause       time.Duration `yaml:"typing_pause,omitempty"`
	SearchSettle      time.Duration `yaml:"search_settle,omitempty"`
	StartSettle       time.Duration `yaml:"start_settle,omitempty"`
	QuestionSettle    time.Duration `yaml:"question_settle,omitempty"`
	SubmitPause       time.Duration `yaml:"submit_pause,omitempty"`
	RefreshSettle     time.Duration `yaml:"refresh_settle,omitempty"`
	ChatLaunchSettle  time.Duration `yaml:"chat_launch_settle,omitempty"`
	CopySettle        time.Duration `yaml:"copy_settle,omitempty"`
	SnapSettle        time.Duration `yaml:"snap_settle,omitempty"`
}

// ChatConfig describes the chat window the prompts are typed into.
type ChatConfig struct {
	URL          string        `yaml:"url,omitempty"`
	BrowserPath  string        `yaml:"browser_path,omitempty"`
	BrowserArgs  []string      `yaml:"browser_args,omitempty"`
	WaitStrategy string        `yaml:"wait_strategy,omitempty"`
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
}

// ScreenConfig names the reference images and the offsets applied to them.
type ScreenConfig struct {
	ImagesDir     string  `yaml:"images_dir,omitempty"`
	MinConfidence float64 `yaml:"min_confidence,omitempty"`
	SnapModifier  string  `yaml:"snap_modifier,omitempty"`

	VerifyButton string `yaml:"verify_button,omitempty"`
	SkillSearch  string `yaml:"skill_search,omitempty"`
	SendMessage  string `yaml:"send_message,omitempty"`
	Response     string `yaml:"response,omitempty"`

	SearchResultOffset Point `yaml:"search_result_offset,omitempty"`
	ResponseSelect     Point `yaml:"response_select_offset,omitempty"`
}

// BrowserConfig controls the automated quiz browser.
type BrowserConfig struct {
	Engine   string `yaml:"engine,omitempty"`
	Headless *bool  `yaml:"headless,omitempty"`
}

// TranscriptConfig controls where and when the transcript is written.
type TranscriptConfig struct {
	Dir         string `yaml:"dir,omitempty"`
	Incremental *bool  `yaml:"incremental,omitempty"`
}

// Config is the top-level configuration loaded from .quizpilot.yaml.
type Config struct {
	Quiz       QuizConfig       `yaml:"quiz,omitempty"`
	Timing     TimingConfig     `yaml:"timing,omitempty"`
	Chat       ChatConfig       `yaml:"chat,omitempty"`
	Screen     ScreenConfig     `yaml:"screen,omitempty"`
	Browser    BrowserConfig    `yaml:"browser,omitempty"`
	Transcript TranscriptConfig `yaml:"transcript,omitempty"`
	Page       PageContract     `yaml:"page,omitempty"`
	Hooks      hooks.Config     `yaml:"hooks,omitempty"`

	Credentials Credentials `yaml:"-"`
}

// New returns a Config with all hard-coded defaults populated.
func New() *Config {
	return &Config{
		Quiz: QuizConfig{
			Practice: utils.Ptr(false),
		},
		Timing: TimingConfig{
			ResponseWait:      DefaultResponseWait,
			ElementTimeout:    DefaultElementTimeout,
			VerificationPopup: DefaultVerificationPopup,
			VerificationWait:  DefaultVerificationWait,
			TypingPause:       DefaultTypingPause,
			SearchSettle:      DefaultSearchSettle,
			StartSettle:       DefaultStartSettle,
			QuestionSettle:    DefaultQuestionSettle,
			SubmitPause:       DefaultSubmitPause,
			RefreshSettle:     DefaultRefreshSettle,
			ChatLaunchSettle:  DefaultChatLaunchSettle,
			CopySettle:        DefaultCopySettle,
			SnapSettle:        DefaultSnapSettle,
		},
		Chat: ChatConfig{
			URL:          DefaultChatURL,
			BrowserPath:  DefaultBrowserPath,
			BrowserArgs:  []string{"-new-tab"},
			WaitStrategy: WaitStrategyPoll,
			PollInterval: DefaultPollInterval,
		},
		Screen: ScreenConfig{
			ImagesDir:          DefaultImagesDir,
			SnapModifier:       DefaultSnapModifier,
			VerifyButton:       DefaultVerifyButtonImage,
			SkillSearch:        DefaultSkillSearchImage,
			SendMessage:        DefaultSendMessageImage,
			Response:           DefaultResponseImage,
			SearchResultOffset: Point{X: 0, Y: 50},
			ResponseSelect:     Point{X: 50, Y: 0},
		},
		Browser: BrowserConfig{
			Engine:   DefaultBrowser,
			Headless: utils.Ptr(false),
		},
		Transcript: TranscriptConfig{
			Dir:         DefaultTranscriptDir,
			Incremental: utils.Ptr(false),
		},
		Page: DefaultPageContract(),
	}
}

// Load finds .quizpilot.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*Config, error) {
	cfg := New()

	data, path, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	if err := overlay(cfg, data, filepath.Dir(path)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads an explicit config path. Unlike Load, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", path, err)
	}

	cfg := New()
	if err := overlay(cfg, data, filepath.Dir(absPath)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlay merges the file contents onto cfg. Relative directories named in
// the file are resolved against baseDir, the directory holding the file.
func overlay(cfg *Config, data []byte, baseDir string) error {
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if fileCfg.Page.Version != 0 && fileCfg.Page.Version != PageContractVersion {
		return fmt.Errorf("page contract version %d is not supported (want %d)", fileCfg.Page.Version, PageContractVersion)
	}

	fileCfg.resolvePaths(baseDir)

	// Non-zero file values win over defaults.
	if err := mergo.Merge(cfg, fileCfg, mergo.WithOverride); err != nil {
		return fmt.Errorf("merging %s: %w", FileName, err)
	}
	return nil
}

func (c *Config) resolvePaths(baseDir string) {
	resolve := func(p *string) {
		*p = utils.ResolvePath(*p, baseDir)
	}
	resolve(&c.Screen.ImagesDir)
	resolve(&c.Transcript.Dir)
	for _, hs := range [][]hooks.Hook{c.Hooks.BeforeRun, c.Hooks.AfterRun, c.Hooks.OnAbort} {
		for i := range hs {
			resolve(&hs[i].WorkingDirectory)
		}
	}
}

// findConfigFile walks up from dir looking for .quizpilot.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// IsPractice reports whether the run uses practice mode.
func (c *Config) IsPractice() bool {
	return c.Quiz.Practice != nil && *c.Quiz.Practice
}

// IsIncremental reports whether the transcript is flushed after every round.
func (c *Config) IsIncremental() bool {
	return c.Transcript.Incremental != nil && *c.Transcript.Incremental
}

// IsHeadless reports whether the quiz browser runs without a window.
func (c *Config) IsHeadless() bool {
	return c.Browser.Headless != nil && *c.Browser.Headless
}

// RoundCount is the number of questions answered per quiz.
func (c *Config) RoundCount() int {
	if c.Quiz.Rounds > 0 {
		return c.Quiz.Rounds
	}
	if c.IsPractice() {
		return DefaultPracticeRounds
	}
	return DefaultGradedRounds
}

// Validate checks the settings a run cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Credentials.Email) == "" {
		errs = append(errs, errors.New("account email is required (QUIZPILOT_EMAIL)"))
	}
	if c.Credentials.Password == "" {
		errs = append(errs, errors.New("account password is required (QUIZPILOT_PASSWORD)"))
	}
	if len(c.Quiz.Names) == 0 {
		errs = append(errs, errors.New("at least one quiz name is required"))
	}
	for i, name := range c.Quiz.Names {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("quiz name %d is empty", i+1))
		}
	}
	if c.Quiz.Rounds < 0 {
		errs = append(errs, fmt.Errorf("quiz rounds must not be negative, got %d", c.Quiz.Rounds))
	}
	if c.Timing.ResponseWait <= 0 {
		errs = append(errs, fmt.Errorf("response wait must be positive, got %s", c.Timing.ResponseWait))
	}
	switch c.Chat.WaitStrategy {
	case WaitStrategyPoll:
		if c.Chat.PollInterval <= 0 {
			errs = append(errs, fmt.Errorf("poll interval must be positive, got %s", c.Chat.PollInterval))
		}
	case WaitStrategyFixed:
	default:
		errs = append(errs, fmt.Errorf("unknown chat wait strategy %q (want %q or %q)", c.Chat.WaitStrategy, WaitStrategyPoll, WaitStrategyFixed))
	}
	if c.Screen.MinConfidence < 0 || c.Screen.MinConfidence > 1 {
		errs = append(errs, fmt.Errorf("screen min_confidence must be within [0, 1], got %g", c.Screen.MinConfidence))
	}
	if info, err := os.Stat(c.Screen.ImagesDir); err != nil || !info.IsDir() {
		errs = append(errs, fmt.Errorf("reference images directory %q not found", c.Screen.ImagesDir))
	}
	if err := c.Page.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
