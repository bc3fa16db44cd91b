package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
)

// EnvPrefix marks the environment variables read by ReadEnv.
const EnvPrefix = "QUIZPILOT_"

// DefaultEnvFile is read when present; a missing default file is not an error.
const DefaultEnvFile = ".env"

// EnvOverrides are the settings that may come from the environment.
type EnvOverrides struct {
	Email    string `mapstructure:"QUIZPILOT_EMAIL"`
	Password string `mapstructure:"QUIZPILOT_PASSWORD"`
	Quiz     string `mapstructure:"QUIZPILOT_QUIZ"`
	Practice *bool  `mapstructure:"QUIZPILOT_PRACTICE"`
	// ResponseWait is in whole seconds.
	ResponseWait int `mapstructure:"QUIZPILOT_RESPONSE_WAIT"`
}

// ReadEnv collects QUIZPILOT_* values from envFile and the process
// environment. Process variables win over the file, matching godotenv.Load.
// An empty envFile skips the file; a missing DefaultEnvFile is ignored.
func ReadEnv(envFile string, environ []string) (EnvOverrides, error) {
	values := map[string]any{}

	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			for k, v := range fileValues {
				if strings.HasPrefix(k, EnvPrefix) {
					values[k] = v
				}
			}
		case errors.Is(err, os.ErrNotExist) && envFile == DefaultEnvFile:
		default:
			return EnvOverrides{}, fmt.Errorf("reading env file %q: %w", envFile, err)
		}
	}

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			values[k] = v
		}
	}

	var out EnvOverrides
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return EnvOverrides{}, err
	}
	if err := dec.Decode(values); err != nil {
		return EnvOverrides{}, fmt.Errorf("decoding %s variables (%s): %w", EnvPrefix, strings.Join(sortedKeys(values), ", "), err)
	}
	return out, nil
}

// ApplyEnv overlays non-empty environment values onto c.
func (c *Config) ApplyEnv(e EnvOverrides) {
	if e.Email != "" {
		c.Credentials.Email = e.Email
	}
	if e.Password != "" {
		c.Credentials.Password = e.Password
	}
	if e.Quiz != "" {
		c.Quiz.Names = []string{e.Quiz}
	}
	if e.Practice != nil {
		c.Quiz.Practice = e.Practice
	}
	if e.ResponseWait > 0 {
		c.Timing.ResponseWait = time.Duration(e.ResponseWait) * time.Second
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
